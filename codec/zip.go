package codec

import (
	"bytes"

	"github.com/klauspost/compress/flate"
)

// Zip is the DEFLATE alternative back-end named in spec.md §4.6: the
// ASCII decimal representation of the integer sequence, compressed
// with github.com/klauspost/compress/flate (the pack's own deflate
// implementation — see DESIGN.md).
type Zip struct{}

func (Zip) Encode(xs []uint64) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return nil, &CodecError{Backend: "zip", Err: err}
	}
	if _, err := w.Write(asciiEncode(xs)); err != nil {
		return nil, &CodecError{Backend: "zip", Err: err}
	}
	if err := w.Close(); err != nil {
		return nil, &CodecError{Backend: "zip", Err: err}
	}
	return buf.Bytes(), nil
}

func (Zip) Decode(b []byte) ([]uint64, error) {
	r := flate.NewReader(bytes.NewReader(b))
	raw, err := drainReader("zip", r, r)
	if err != nil {
		return nil, err
	}
	xs, err := asciiDecode(raw)
	if err != nil {
		return nil, &CodecError{Backend: "zip", Err: err}
	}
	return xs, nil
}
