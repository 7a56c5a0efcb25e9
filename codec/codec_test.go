package codec

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestDiffEncodeDecodeRoundTrip(t *testing.T) {
	cases := [][]bool{
		nil,
		{},
		{false},
		{true},
		{true, true, true},
		{false, false, false},
		{true, false, true, true, false},
		{false, true, true, false, true},
	}
	for i, bits := range cases {
		ds := DiffEncode(bits)
		got := DiffDecode(ds)
		if len(bits) == 0 {
			if len(got) != 0 {
				t.Errorf("case %d: DiffDecode(DiffEncode(%v)) = %v, want empty", i, bits, got)
			}
			continue
		}
		if !reflect.DeepEqual(got, bits) {
			t.Errorf("case %d: DiffDecode(DiffEncode(%v)) = %v, want %v", i, bits, got, bits)
		}
	}
}

func TestGolombRiceRoundTripAllK(t *testing.T) {
	xs := []uint64{0, 1, 2, 3, 7, 8, 15, 16, 255, 256, 1000, 1 << 20}
	for k := uint(0); k <= 31; k++ {
		enc := GolombRiceEncode(xs, k)
		dec, err := GolombRiceDecode(enc, k)
		if err != nil {
			t.Fatalf("k=%d: decode error: %v", k, err)
		}
		if !reflect.DeepEqual(dec, xs) {
			t.Fatalf("k=%d: GolombRiceDecode(GolombRiceEncode(xs)) = %v, want %v", k, dec, xs)
		}
	}
}

func TestGolombRiceRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		n := rng.Intn(50)
		xs := make([]uint64, n)
		for i := range xs {
			xs[i] = uint64(rng.Intn(1 << 16))
		}
		k := uint(rng.Intn(16))
		enc := GolombRiceEncode(xs, k)
		dec, err := GolombRiceDecode(enc, k)
		if err != nil {
			t.Fatalf("trial %d: decode error: %v", trial, err)
		}
		if len(xs) == 0 {
			if len(dec) != 0 {
				t.Fatalf("trial %d: want empty decode, got %v", trial, dec)
			}
			continue
		}
		if !reflect.DeepEqual(dec, xs) {
			t.Fatalf("trial %d: round-trip mismatch: got %v, want %v", trial, dec, xs)
		}
	}
}

func TestGolombRiceEmpty(t *testing.T) {
	enc := GolombRiceEncode(nil, 3)
	dec, err := GolombRiceDecode(enc, 3)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(dec) != 0 {
		t.Fatalf("decode of empty input = %v, want empty", dec)
	}
}

func TestBackendRoundTrips(t *testing.T) {
	xs := []uint64{0, 1, 2, 3, 10, 100, 1000}
	backends := map[string]Backend{
		"golrice": GolombRice{K: 2},
		"zip":     Zip{},
		"lz4":     LZ4{},
	}
	for name, b := range backends {
		enc, err := b.Encode(xs)
		if err != nil {
			t.Fatalf("%s: Encode: %v", name, err)
		}
		dec, err := b.Decode(enc)
		if err != nil {
			t.Fatalf("%s: Decode: %v", name, err)
		}
		if !reflect.DeepEqual(dec, xs) {
			t.Fatalf("%s: round trip = %v, want %v", name, dec, xs)
		}
	}
}

func TestBackendRoundTripsEmpty(t *testing.T) {
	backends := map[string]Backend{
		"zip": Zip{},
		"lz4": LZ4{},
	}
	for name, b := range backends {
		enc, err := b.Encode(nil)
		if err != nil {
			t.Fatalf("%s: Encode(nil): %v", name, err)
		}
		dec, err := b.Decode(enc)
		if err != nil {
			t.Fatalf("%s: Decode: %v", name, err)
		}
		if len(dec) != 0 {
			t.Fatalf("%s: round trip of empty input = %v, want empty", name, dec)
		}
	}
}

func TestFactoryUnknownCodec(t *testing.T) {
	if _, err := New("bogus", 2, 0); err == nil {
		t.Fatal("New(\"bogus\", ...) should error")
	}
}

func TestFactoryKnownCodecs(t *testing.T) {
	for _, name := range []string{GolRiceName, ZipName, LZ4Name} {
		if _, err := New(name, 2, 0); err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
	}
}
