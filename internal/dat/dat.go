// Package dat reads MS format level sets. A DAT file stores each level
// as two run-length encoded layers of raw tile codes plus a block of
// metadata chunks; Converter turns the raw cells into native levels and
// applies the preprocessing the simulation expects.
package dat

import (
	"errors"
	"fmt"
	"os"

	"github.com/vovakirdan/tileworld/internal/lynx"
)

const (
	magicPlain    = 0x0002aaac
	magicLynxFlag = 0x0102aaac
)

// Metadata chunk IDs.
const (
	chunkTitle    = 3
	chunkTraps    = 4
	chunkCloners  = 5
	chunkPassword = 6
	chunkHint     = 7
	chunkMonsters = 10
)

var errEOF = errors.New("dat: unexpected end of file")

// Position is a grid coordinate from the monster list chunk.
type Position struct {
	X, Y uint8
}

// Level is one raw level as stored in a DAT file. The layers keep the MS
// tile codes untouched; Convert translates them.
type Level struct {
	Number        int
	TimeLimit     uint16
	RequiredChips uint16
	Title         string
	Password      string
	Hint          string
	Monsters      []Position
	TrapLinks     []lynx.Link
	ClonerLinks   []lynx.Link

	top    [lynx.GridSize]byte
	bottom [lynx.GridSize]byte
}

// ReadFile loads and parses a DAT level set from disk.
func ReadFile(path string) ([]*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dat: cannot read level set: %w", err)
	}
	return Read(data)
}

// Read parses all levels of a DAT level set.
func Read(data []byte) ([]*Level, error) {
	r := reader{data: data}
	magic, err := r.uint(4)
	if err != nil {
		return nil, err
	}
	if magic != magicPlain && magic != magicLynxFlag {
		return nil, fmt.Errorf("dat: invalid magic number %#08x", magic)
	}
	count, err := r.uint(2)
	if err != nil {
		return nil, err
	}

	levels := make([]*Level, 0, count)
	for i := 0; i < int(count); i++ {
		length, err := r.uint(2)
		if err != nil {
			return nil, err
		}
		end := r.pos + int(length)
		if end > len(data) {
			return nil, errEOF
		}
		lv, err := r.level()
		if err != nil {
			return nil, err
		}
		levels = append(levels, lv)
		// each record declares its own length, trailing bytes are fine
		r.pos = end
	}
	return levels, nil
}

// level parses one level record: the fixed header, the two layers and the
// metadata block.
func (r *reader) level() (*Level, error) {
	number, err := r.uint(2)
	if err != nil {
		return nil, err
	}
	timeLimit, err := r.uint(2)
	if err != nil {
		return nil, err
	}
	chips, err := r.uint(2)
	if err != nil {
		return nil, err
	}
	// an always-one field of unknown purpose
	if _, err := r.uint(2); err != nil {
		return nil, err
	}

	lv := &Level{
		Number:        int(number),
		RequiredChips: uint16(chips),
	}
	switch {
	case timeLimit == 0:
		// untimed
	case timeLimit >= 1000:
		return nil, fmt.Errorf("dat: level %d: time limit over 999 seconds", number)
	default:
		lv.TimeLimit = uint16(timeLimit) * lynx.TicksPerSecond
	}

	if err := r.layer(&lv.top); err != nil {
		return nil, err
	}
	if err := r.layer(&lv.bottom); err != nil {
		return nil, err
	}

	metaLen, err := r.uint(2)
	if err != nil {
		return nil, err
	}
	end := r.pos + int(metaLen)
	if end > len(r.data) {
		return nil, errEOF
	}

	var hasTitle, hasPassword bool
	for r.pos < end {
		id, err := r.uint(1)
		if err != nil {
			return nil, err
		}
		length, err := r.uint(1)
		if err != nil {
			return nil, err
		}
		if r.pos+int(length) > len(r.data) {
			return nil, errEOF
		}
		chunk := r.data[r.pos : r.pos+int(length)]
		r.pos += int(length)

		switch id {
		case chunkTitle:
			lv.Title = cString(chunk)
			hasTitle = true
		case chunkTraps:
			lv.TrapLinks = readLinks(chunk, 10)
		case chunkCloners:
			lv.ClonerLinks = readLinks(chunk, 8)
		case chunkPassword:
			lv.Password = decodePassword(chunk)
			hasPassword = true
		case chunkHint:
			lv.Hint = cString(chunk)
		case chunkMonsters:
			for i := 0; i+2 <= len(chunk); i += 2 {
				lv.Monsters = append(lv.Monsters, Position{X: chunk[i], Y: chunk[i+1]})
			}
		default:
			return nil, fmt.Errorf("dat: level %d: unknown metadata chunk ID %d", number, id)
		}
	}
	if r.pos != end {
		return nil, fmt.Errorf("dat: level %d: bad metadata block", number)
	}
	if !hasTitle {
		return nil, fmt.Errorf("dat: level %d: missing title", number)
	}
	if !hasPassword {
		return nil, fmt.Errorf("dat: level %d: missing password", number)
	}
	return lv, nil
}

// layer decodes one run-length encoded layer. A 0xff byte introduces a
// run as a count and tile pair, any other byte is a single cell.
func (r *reader) layer(out *[lynx.GridSize]byte) error {
	size, err := r.uint(2)
	if err != nil {
		return err
	}
	end := r.pos + int(size)
	if end > len(r.data) {
		return errEOF
	}

	run := 0
	var tile byte
	for i := range out {
		if run > 0 {
			out[i] = tile
			run--
			continue
		}
		b, err := r.uint(1)
		if err != nil {
			return err
		}
		tile = byte(b)
		if tile == 0xff {
			count, err := r.uint(1)
			if err != nil {
				return err
			}
			t, err := r.uint(1)
			if err != nil {
				return err
			}
			if count == 0 {
				return errors.New("dat: bad run length")
			}
			run = int(count) - 1
			tile = byte(t)
		}
		out[i] = tile
	}
	r.pos = end
	return nil
}

// cString drops the trailing NUL of a metadata string chunk.
func cString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return string(b[:len(b)-1])
}

// decodePassword undoes the XOR obfuscation of the password chunk.
func decodePassword(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	b = b[:len(b)-1]
	out := make([]byte, len(b))
	for i, c := range b {
		out[i] = c ^ 0x99
	}
	return string(out)
}

// readLinks parses a button linkage chunk. Coordinates are stored as
// little-endian u16 pairs but never exceed a byte; the trailing open or
// closed word of a trap entry is ignored.
func readLinks(b []byte, stride int) []lynx.Link {
	var links []lynx.Link
	for i := 0; i+7 <= len(b); i += stride {
		links = append(links, lynx.Link{
			ButtonX: b[i],
			ButtonY: b[i+2],
			TargetX: b[i+4],
			TargetY: b[i+6],
		})
	}
	return links
}

type reader struct {
	data []byte
	pos  int
}

// uint reads an n byte little-endian integer, n at most 8.
func (r *reader) uint(n int) (uint64, error) {
	if r.pos+n > len(r.data) {
		return 0, errEOF
	}
	var v uint64
	for i := 0; i < n; i++ {
		v |= uint64(r.data[r.pos]) << (8 * i)
		r.pos++
	}
	return v, nil
}
