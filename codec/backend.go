package codec

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CodecError wraps a back-end decode failure, per spec.md §7.
type CodecError struct {
	Backend string
	Err     error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("codec: %s decode failed: %v", e.Backend, e.Err)
}

func (e *CodecError) Unwrap() error { return e.Err }

// Backend packs/unpacks a difference-encoded integer sequence into
// bytes. GolombRice is the default; Zip and LZ4 are the alternative
// byte-stream back-ends named in spec.md §4.6.
type Backend interface {
	Encode(xs []uint64) ([]byte, error)
	Decode(b []byte) ([]uint64, error)
}

// GolombRice is the default Backend, parameterized by the Rice
// parameter k (the `-grp` CLI flag).
type GolombRice struct {
	K uint
}

func (g GolombRice) Encode(xs []uint64) ([]byte, error) {
	return GolombRiceEncode(xs, g.K), nil
}

func (g GolombRice) Decode(b []byte) ([]uint64, error) {
	xs, err := GolombRiceDecode(b, g.K)
	if err != nil {
		return nil, &CodecError{Backend: "golrice", Err: err}
	}
	return xs, nil
}

// asciiEncode renders xs as the ASCII decimal representation used by
// the Zip and LZ4 back-ends: space-separated, no trailing whitespace.
func asciiEncode(xs []uint64) []byte {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.FormatUint(x, 10)
	}
	return []byte(strings.Join(parts, " "))
}

func asciiDecode(b []byte) ([]uint64, error) {
	s := strings.TrimSpace(string(b))
	if s == "" {
		return nil, nil
	}
	fields := strings.Fields(s)
	xs := make([]uint64, len(fields))
	for i, f := range fields {
		x, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed integer %q: %w", f, err)
		}
		xs[i] = x
	}
	return xs, nil
}

// drainReader reads r fully, wrapping both read and close errors under
// backend for a uniform CodecError.
func drainReader(backend string, r io.Reader, closer io.Closer) ([]byte, error) {
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, &CodecError{Backend: backend, Err: err}
	}
	if closer != nil {
		if err := closer.Close(); err != nil {
			return nil, &CodecError{Backend: backend, Err: err}
		}
	}
	return out, nil
}
