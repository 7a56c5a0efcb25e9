package codec

import (
	"bytes"

	"github.com/pierrec/lz4/v4"
)

// LZ4 is the LZ4 alternative back-end named in spec.md §4.6. The
// decompressed-length hint the original C++ implementation required
// callers to configure (e.g. 3*n, see Parser.h's readCompressedFile) is
// unnecessary here: the LZ4 frame format marks its own end, so Decode
// reads until then. HintLen is accepted but not read by Encode or
// Decode.
type LZ4 struct {
	HintLen int
}

func (l LZ4) Encode(xs []uint64) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(asciiEncode(xs)); err != nil {
		return nil, &CodecError{Backend: "lz4", Err: err}
	}
	if err := w.Close(); err != nil {
		return nil, &CodecError{Backend: "lz4", Err: err}
	}
	return buf.Bytes(), nil
}

func (l LZ4) Decode(b []byte) ([]uint64, error) {
	r := lz4.NewReader(bytes.NewReader(b))
	raw, err := drainReader("lz4", r, nil)
	if err != nil {
		return nil, err
	}
	xs, err := asciiDecode(raw)
	if err != nil {
		return nil, &CodecError{Backend: "lz4", Err: err}
	}
	return xs, nil
}
