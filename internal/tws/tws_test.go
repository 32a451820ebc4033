package tws

import (
	"encoding/binary"
	"slices"
	"strings"
	"testing"

	"github.com/vovakirdan/tileworld/internal/lynx"
)

func u32(v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return b[:]
}

func header() []byte {
	return []byte{0x35, 0x33, 0x9b, 0x99, 1, 0, 0, 0}
}

func record(number uint16, body []byte) []byte {
	rec := u32(uint32(len(body) + 2))
	rec = append(rec, byte(number), byte(number>>8))
	return append(rec, body...)
}

// solutionBody builds a record body: password, flags, initial
// conditions, seed, total time and the raw move stream.
func solutionBody(cond uint8, seed, total uint32, moves []byte) []byte {
	body := []byte{'A', 'B', 'C', 'D', 0, cond}
	body = append(body, u32(seed)...)
	body = append(body, u32(total)...)
	return append(body, moves...)
}

func TestHeaderValidation(t *testing.T) {
	if _, err := New([]byte{0x35, 0x33}); err == nil {
		t.Errorf("short file accepted")
	}
	if _, err := New([]byte{1, 2, 3, 4, 1, 0, 0, 0}); err == nil {
		t.Errorf("bad signature accepted")
	}
	ms := header()
	ms[4] = 2
	if _, err := New(ms); err == nil || !strings.Contains(err.Error(), "lynx") {
		t.Errorf("non-lynx ruleset accepted: %v", err)
	}
	if _, err := New(header()); err != nil {
		t.Errorf("valid header rejected: %v", err)
	}
}

func TestSolutionLookup(t *testing.T) {
	data := header()
	// password-only record for level 1
	data = append(data, record(1, []byte("ABCD"))...)
	// padding between records
	data = append(data, u32(0)...)
	// full record for level 2, no moves
	data = append(data, record(2, solutionBody(0, 99, 1234, nil))...)

	f, err := New(data)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	sol, err := f.Solution(1)
	if err != nil {
		t.Fatalf("Solution(1): %v", err)
	}
	if sol != nil {
		t.Errorf("password-only record should have no replay")
	}

	sol, err = f.Solution(2)
	if err != nil {
		t.Fatalf("Solution(2): %v", err)
	}
	if sol == nil {
		t.Fatalf("record for level 2 not found")
	}
	if sol.Seed != 99 {
		t.Errorf("seed mismatch: %d vs 99", sol.Seed)
	}
	if sol.TotalTime != 1234 {
		t.Errorf("total time mismatch: %d vs 1234", sol.TotalTime)
	}
	if len(sol.Moves) != 0 {
		t.Errorf("move count mismatch: %d vs 0", len(sol.Moves))
	}

	sol, err = f.Solution(3)
	if err != nil {
		t.Fatalf("Solution(3): %v", err)
	}
	if sol != nil {
		t.Errorf("missing level should return nil")
	}
}

func TestInitialConditions(t *testing.T) {
	data := header()
	// slide dir 6, stepping 5
	data = append(data, record(4, solutionBody(5<<3|6, 1, 1, nil))...)

	f, err := New(data)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sol, err := f.Solution(4)
	if err != nil {
		t.Fatalf("Solution: %v", err)
	}
	if sol.InitialSlideDir != 6 {
		t.Errorf("slide dir mismatch: %d vs 6", sol.InitialSlideDir)
	}
	if sol.Stepping != 5 {
		t.Errorf("stepping mismatch: %d vs 5", sol.Stepping)
	}
}

func TestMoveDecoding(t *testing.T) {
	tests := []struct {
		name  string
		raw   []byte
		moves []Move
	}{
		{
			// three 2-bit directions in one byte: north, west, south
			name: "packed",
			raw:  []byte{2<<6 | 1<<4 | 0<<2},
			moves: []Move{
				{Delta: 3, Direction: lynx.MaskNorth},
				{Delta: 4, Direction: lynx.MaskWest},
				{Delta: 4, Direction: lynx.MaskSouth},
			},
		},
		{
			// one byte: east, delta 5
			name:  "short",
			raw:   []byte{4<<5 | 3<<2 | 1},
			moves: []Move{{Delta: 4, Direction: lynx.MaskEast}},
		},
		{
			// two bytes: diagonal north-west, delta 100
			name:  "medium",
			raw:   []byte{0x72, 0x0c},
			moves: []Move{{Delta: 99, Direction: lynx.MaskNorth | lynx.MaskWest}},
		},
		{
			// four bytes: south, delta 70000
			name:  "long",
			raw:   []byte{0xeb, 0x2d, 0x22, 0x00},
			moves: []Move{{Delta: 69999, Direction: lynx.MaskSouth}},
		},
		{
			// two byte variable form: mask 9 is north-east, delta 4
			name:  "variable",
			raw:   []byte{0x33, 0xc1},
			moves: []Move{{Delta: 3, Direction: lynx.MaskNorth | lynx.MaskEast}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := header()
			data = append(data, record(1, solutionBody(0, 0, 100, tt.raw))...)

			f, err := New(data)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			sol, err := f.Solution(1)
			if err != nil {
				t.Fatalf("Solution: %v", err)
			}
			if sol == nil {
				t.Fatalf("no solution decoded")
			}
			if !slices.Equal(sol.Moves, tt.moves) {
				t.Errorf("moves mismatch: %v vs %v", sol.Moves, tt.moves)
			}
		})
	}
}

func TestMouseMovesRejected(t *testing.T) {
	// variable form with direction field 16, the first mouse value
	data := header()
	data = append(data, record(1, solutionBody(0, 0, 100, []byte{0x13, 0x02}))...)

	f, err := New(data)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := f.Solution(1); err == nil || !strings.Contains(err.Error(), "mouse") {
		t.Errorf("mouse move accepted: %v", err)
	}
}

func TestTruncatedMoveStream(t *testing.T) {
	// the record claims one move byte but the token needs two
	data := header()
	data = append(data, record(1, solutionBody(0, 0, 100, []byte{0x02}))...)
	// trailing record so the token read itself succeeds
	data = append(data, record(2, solutionBody(0, 0, 100, nil))...)

	f, err := New(data)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := f.Solution(1); err == nil {
		t.Errorf("truncated move stream accepted")
	}
}

func TestStepsIterator(t *testing.T) {
	sol := &Solution{Moves: []Move{
		{Delta: 3, Direction: lynx.MaskEast},
		{Delta: 4, Direction: lynx.MaskSouth},
	}}

	var got []lynx.DirMask
	for d := range sol.Steps() {
		got = append(got, d)
	}
	want := []lynx.DirMask{
		0, 0, 0, lynx.MaskEast,
		0, 0, 0, lynx.MaskSouth,
	}
	if !slices.Equal(got, want) {
		t.Errorf("step sequence mismatch: %v vs %v", got, want)
	}

	// an immediate first press
	sol = &Solution{Moves: []Move{{Delta: 0, Direction: lynx.MaskNorth}}}
	got = got[:0]
	for d := range sol.Steps() {
		got = append(got, d)
	}
	if !slices.Equal(got, []lynx.DirMask{lynx.MaskNorth}) {
		t.Errorf("step sequence mismatch: %v", got)
	}

	// no moves, no steps
	sol = &Solution{}
	for range sol.Steps() {
		t.Fatalf("empty solution yielded a step")
	}
}

func TestStepsStopsEarly(t *testing.T) {
	sol := &Solution{Moves: []Move{
		{Delta: 8, Direction: lynx.MaskEast},
	}}

	count := 0
	for range sol.Steps() {
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Errorf("yield count mismatch: %d vs 3", count)
	}
}
