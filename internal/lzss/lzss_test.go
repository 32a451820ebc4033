package lzss

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"single byte", []byte{0x42}},
		{"two distinct", []byte{1, 2}},
		{"short run", []byte("aaaa")},
		{"long run", bytes.Repeat([]byte{0}, 1536)},
		{"alternating", bytes.Repeat([]byte{0xa, 0xb}, 200)},
		{"text with repeats", []byte("the quick brown fox jumps over the quick brown fox")},
		{"max length run", bytes.Repeat([]byte{7}, 131)},
		{"no repeats", func() []byte {
			b := make([]byte, 256)
			for i := range b {
				b[i] = byte(i)
			}
			return b
		}()},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			enc := Encode(c.data)
			dec, err := Decode(enc)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if !bytes.Equal(dec, c.data) {
				t.Errorf("round trip mismatch: got %d bytes, want %d bytes", len(dec), len(c.data))
			}
		})
	}
}

func TestRoundTripRandom(t *testing.T) {
	// Tile-like data: long stretches of a few values with occasional noise,
	// larger than the window so distances cross the eviction boundary.
	rng := rand.New(rand.NewSource(1))
	data := make([]byte, 4096)
	for i := range data {
		if rng.Intn(10) == 0 {
			data[i] = byte(rng.Intn(64))
		} else {
			data[i] = byte(rng.Intn(3))
		}
	}

	enc := Encode(data)
	dec, err := Decode(enc)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(dec, data) {
		t.Error("round trip mismatch on random data")
	}
	if len(enc) >= len(data) {
		t.Errorf("expected compression on repetitive data: %d -> %d bytes", len(data), len(enc))
	}
}

func TestEncodeKnownBytes(t *testing.T) {
	// "aaaa" = literal 'a', then a single-byte back-reference of length 3 at
	// distance 1 (overlapping copy). Type byte 0b10 covers both tokens.
	got := Encode([]byte("aaaa"))
	want := []byte{0x02, 'a', 0x02}
	if !bytes.Equal(got, want) {
		t.Errorf("Encode(\"aaaa\") = %#v, want %#v", got, want)
	}
}

func TestDecodeKnownBytes(t *testing.T) {
	// Two literals under one type byte.
	got, err := Decode([]byte{0x00, 'h', 'i'})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if string(got) != "hi" {
		t.Errorf("Decode = %q, want %q", got, "hi")
	}

	// Literal then two-byte back-reference: distance 1, length 3.
	// Backref value = (0 << 8) | (0 << 1) | 1 = 0x0001, little-endian.
	got, err = Decode([]byte{0x02, 'x', 0x01, 0x00})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if string(got) != "xxxx" {
		t.Errorf("Decode = %q, want %q", got, "xxxx")
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"trailing type byte", []byte{0x00}},
		{"truncated two-byte backref", []byte{0x01, 0x01}},
		{"distance past start", []byte{0x01, 0x02}},
		{"distance beyond output", []byte{0x02, 'a', 0x0a}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Decode(c.data); err == nil {
				t.Errorf("Decode(%#v) succeeded, want error", c.data)
			}
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	out, err := Decode(nil)
	if err != nil {
		t.Fatalf("Decode(nil) failed: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("Decode(nil) = %d bytes, want 0", len(out))
	}
}
