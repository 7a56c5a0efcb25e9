package codec

import "fmt"

// Names enumerates the `-c` CLI option (§6).
const (
	GolRiceName = "golrice"
	ZipName     = "zip"
	LZ4Name     = "lz4"
)

// New builds the named Backend. k is the Golomb-Rice parameter
// (`-grp`), hintLen the LZ4 decompressed-length hint.
func New(name string, k uint, hintLen int) (Backend, error) {
	switch name {
	case GolRiceName:
		return GolombRice{K: k}, nil
	case ZipName:
		return Zip{}, nil
	case LZ4Name:
		return LZ4{HintLen: hintLen}, nil
	default:
		return nil, fmt.Errorf("codec: unknown codec %q", name)
	}
}
