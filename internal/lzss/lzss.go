// Package lzss implements the byte-oriented LZSS variant used by level packs.
//
// Token types are indicated by a type byte, one bit per token, low bit first:
// a 0 bit is a raw byte, a 1 bit is a back-reference into the last 256 bytes
// of output. The first byte of a stream is always a type byte, and a new one
// is inserted after every 8 tokens. Back-references come in two shapes,
// discriminated by the low bit of their first byte:
//
//	1 byte:  5-bit distance (-1), 2-bit length (-2), flag bit = 0
//	2 bytes: 8-bit distance (-1), 7-bit length (-3), flag bit = 1 (little-endian)
//
// Distances and lengths are stored minus one and minus the break-even length
// respectively, to maximize range.
package lzss

import "fmt"

const (
	distanceBits1 = 5
	distanceBits2 = 8

	lengthBits1 = 7 - distanceBits1
	lengthBits2 = 15 - distanceBits2

	windowSize = 1 << distanceBits2

	// Minimum match lengths worth a back-reference of each shape.
	breakeven1 = 2
	breakeven2 = 3

	maxDistance1 = 1 << distanceBits1
	maxLength1   = 1<<lengthBits1 - 1 + breakeven1
	maxLength2   = 1<<lengthBits2 - 1 + breakeven2

	lengthMask1 = 1<<lengthBits1 - 1
	lengthMask2 = 1<<lengthBits2 - 1
)

// Encode compresses data. The output always decodes back to data exactly.
func Encode(data []byte) []byte {
	var out []byte
	window := make([]byte, 0, windowSize)

	typeBits := 8
	typePos := 0
	appendTokenType := func(t byte) {
		if typeBits == 8 {
			typeBits = 0
			typePos = len(out)
			out = append(out, 0)
		}
		out[typePos] |= t << typeBits
		typeBits++
	}

	i := 0
	for i < len(data) {
		// Find the longest match in the window, scanning from the most
		// recent start position backward. A match may run past the end of
		// the window by cycling back to its start position, which mirrors
		// the decoder's overlapping copy.
		maxSeqPos := -1
		maxSeq := 0
		for j := len(window) - 1; j >= 0; j-- {
			startPos := j
			k := j
			seqLen := 0
			for window[k] == data[i] {
				i++
				k++
				seqLen++
				if seqLen == maxLength2 || i == len(data) {
					break
				}
				if k == len(window) {
					k = startPos
				}
			}
			i -= seqLen
			if seqLen > maxSeq {
				maxSeqPos = startPos
				maxSeq = seqLen
				if seqLen == len(data)-i {
					// Reached end of data, no match can be longer.
					break
				}
			}
		}

		distance := len(window) - maxSeqPos
		singleByte := maxSeq <= maxLength1 && distance <= maxDistance1
		if singleByte && maxSeq >= breakeven1 || maxSeq >= breakeven2 {
			appendTokenType(1)
			if singleByte {
				out = append(out, byte((distance-1)<<(lengthBits1+1)|(maxSeq-breakeven1)<<1))
			} else {
				backref := (distance-1)<<(lengthBits2+1) | (maxSeq-breakeven2)<<1 | 0x1
				out = append(out, byte(backref), byte(backref>>8))
			}
			for j := 0; j < maxSeq; j++ {
				window = append(window, window[maxSeqPos+j])
			}
			i += maxSeq
		} else {
			appendTokenType(0)
			b := data[i]
			out = append(out, b)
			window = append(window, b)
			i++
		}
		if len(window) > windowSize {
			window = window[len(window)-windowSize:]
		}
	}

	return out
}

// Decode decompresses data. It fails on truncated tokens and on
// back-references that reach before the start of the output.
func Decode(data []byte) ([]byte, error) {
	var out []byte

	var typeByte byte
	typeBits := 0
	i := 0
	for i < len(data) {
		if typeBits == 0 {
			typeByte = data[i]
			typeBits = 8
			i++
			if i == len(data) {
				return nil, fmt.Errorf("lzss: truncated stream after type byte at offset %d", i-1)
			}
		}

		if typeByte&1 != 0 {
			var length, distance int
			if data[i]&0x1 != 0 {
				if i+1 >= len(data) {
					return nil, fmt.Errorf("lzss: truncated back-reference at offset %d", i)
				}
				backref := (int(data[i]) | int(data[i+1])<<8) >> 1
				length = (backref & lengthMask2) + breakeven2
				distance = (backref >> lengthBits2) + 1
				i += 2
			} else {
				backref := int(data[i]) >> 1
				length = (backref & lengthMask1) + breakeven1
				distance = (backref >> lengthBits1) + 1
				i++
			}
			start := len(out) - distance
			if start < 0 {
				return nil, fmt.Errorf("lzss: back-reference distance %d exceeds output size %d", distance, len(out))
			}
			for j := 0; j < length; j++ {
				out = append(out, out[start+j])
			}
		} else {
			out = append(out, data[i])
			i++
		}
		typeByte >>= 1
		typeBits--
	}

	return out, nil
}
