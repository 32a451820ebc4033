// Package tws reads Tile World solution files. Only the Lynx ruleset
// is supported; a solution carries the initial conditions for the
// simulation plus a compact encoding of the player's inputs.
package tws

import (
	"bytes"
	"errors"
	"fmt"
	"iter"
	"os"

	"github.com/vovakirdan/tileworld/internal/lynx"
)

var signature = []byte{0x35, 0x33, 0x9b, 0x99}

const rulesetLynx = 1

var errTruncated = errors.New("tws: truncated move encoding")

// moveDirections is the wire encoding's direction alphabet. Short move
// forms index into it; long forms carry the mask value itself.
var moveDirections = [8]lynx.DirMask{
	lynx.MaskNorth,
	lynx.MaskWest,
	lynx.MaskSouth,
	lynx.MaskEast,
	lynx.MaskNorth | lynx.MaskWest,
	lynx.MaskSouth | lynx.MaskWest,
	lynx.MaskNorth | lynx.MaskEast,
	lynx.MaskSouth | lynx.MaskEast,
}

// Move is one decoded input: hold still for Delta ticks, then press
// Direction.
type Move struct {
	Delta     uint32
	Direction lynx.DirMask
}

// Solution is the replay recorded for one level.
type Solution struct {
	TotalTime       uint32
	Stepping        uint8
	InitialSlideDir uint8
	Seed            uint32
	Moves           []Move
}

// Steps yields the per-tick input sequence of the solution, one value
// per Game.Step call. The sequence ends with the final recorded press;
// the caller pads with idle ticks up to TotalTime.
func (s *Solution) Steps() iter.Seq[lynx.DirMask] {
	return func(yield func(lynx.DirMask) bool) {
		time := uint32(0)
		for _, m := range s.Moves {
			for time < m.Delta {
				if !yield(0) {
					return
				}
				time++
			}
			if !yield(m.Direction) {
				return
			}
			time = time - m.Delta + 1
		}
	}
}

// File is a parsed solution file holding any number of level records.
type File struct {
	data []byte
}

// New validates the header and wraps data as a solution file.
func New(data []byte) (*File, error) {
	if len(data) < 8 {
		return nil, errors.New("tws: file too short")
	}
	if !bytes.Equal(data[:4], signature) {
		return nil, errors.New("tws: bad signature")
	}
	if data[4] != rulesetLynx {
		return nil, errors.New("tws: only the lynx ruleset is supported")
	}
	return &File{data: data}, nil
}

// ReadFile loads and validates a solution file from disk.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tws: cannot read solution file: %w", err)
	}
	return New(data)
}

// Solution finds and decodes the record for the given level number.
// It returns nil without error when the file has no record for the
// level, or when the record holds only the level password.
func (f *File) Solution(number uint16) (*Solution, error) {
	r := reader{data: f.data, pos: 8}

	var end int
	var size uint64
	found := false
	for r.pos < len(f.data) {
		offset, err := r.uint(4)
		if err != nil {
			return nil, err
		}
		if offset == 0 {
			// padding record
			continue
		}
		end = r.pos + int(offset)
		num, err := r.uint(2)
		if err != nil {
			return nil, err
		}
		if uint16(num) == number {
			size = offset
			found = true
			break
		}
		r.pos = end
	}
	if !found {
		return nil, nil
	}
	if size < 16 {
		// password-only record, no replay
		return nil, nil
	}

	// skip the password and a flags byte
	r.pos += 5
	cond, err := r.uint(1)
	if err != nil {
		return nil, err
	}
	seed, err := r.uint(4)
	if err != nil {
		return nil, err
	}
	total, err := r.uint(4)
	if err != nil {
		return nil, err
	}

	var moves []Move
	for r.pos < end {
		if r.pos >= len(f.data) {
			return nil, errTruncated
		}
		chunk, err := r.moves(f.data[r.pos])
		if err != nil {
			return nil, err
		}
		if len(moves) == 0 {
			// the first press of a replay lands one tick early
			chunk[0].Delta--
		}
		moves = append(moves, chunk...)
	}
	if r.pos != end {
		return nil, errTruncated
	}

	return &Solution{
		TotalTime:       uint32(total),
		Stepping:        uint8(cond>>3) & 0x7,
		InitialSlideDir: uint8(cond) & 0x7,
		Seed:            uint32(seed),
		Moves:           moves,
	}, nil
}

type reader struct {
	data []byte
	pos  int
}

// uint reads an n byte little-endian integer, n at most 8.
func (r *reader) uint(n int) (uint64, error) {
	if r.pos+n > len(r.data) {
		return 0, errTruncated
	}
	var v uint64
	for i := 0; i < n; i++ {
		v |= uint64(r.data[r.pos]) << (8 * i)
		r.pos++
	}
	return v, nil
}

// moves decodes one token of the move stream. The two low bits of the
// leading byte select the form; most forms decode to a single move, the
// packed form to three.
func (r *reader) moves(lead byte) ([]Move, error) {
	switch {
	case lead&0x3 == 0:
		// three 2-bit directions, four ticks apart
		v, err := r.uint(1)
		if err != nil {
			return nil, err
		}
		return []Move{
			{Delta: 4, Direction: moveDirections[(v>>2)&0x3]},
			{Delta: 4, Direction: moveDirections[(v>>4)&0x3]},
			{Delta: 4, Direction: moveDirections[(v>>6)&0x3]},
		}, nil
	case lead&0x3 == 1:
		return r.shortMove(1)
	case lead&0x3 == 2:
		return r.shortMove(2)
	case lead&0x10 != 0:
		// variable length form, also used for mouse moves
		v, err := r.uint(int((lead>>2)&0x3) + 2)
		if err != nil {
			return nil, err
		}
		dir, ok := maskDirection((v >> 5) & 0x1ff)
		if !ok {
			return nil, errors.New("tws: mouse moves are not supported")
		}
		return []Move{{Delta: uint32(v>>14) + 1, Direction: dir}}, nil
	default:
		v, err := r.uint(4)
		if err != nil {
			return nil, err
		}
		return []Move{{
			Delta:     (uint32(v>>5) + 1) & 0x7fffff,
			Direction: moveDirections[(v>>2)&0x3],
		}}, nil
	}
}

func (r *reader) shortMove(n int) ([]Move, error) {
	v, err := r.uint(n)
	if err != nil {
		return nil, err
	}
	return []Move{{
		Delta:     uint32(v>>5) + 1,
		Direction: moveDirections[(v>>2)&0x7],
	}}, nil
}

// maskDirection validates a long-form direction field, which carries a
// direction mask rather than a table index.
func maskDirection(v uint64) (lynx.DirMask, bool) {
	for _, d := range moveDirections {
		if v == uint64(d) {
			return d, true
		}
	}
	return 0, false
}
