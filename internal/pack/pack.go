// Package pack reads and writes tileworld level packs. A pack is a
// compact container: a level index up front, then one record per level
// holding compressed map layers and metadata chunks.
package pack

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/vovakirdan/tileworld/internal/lzss"
	"github.com/vovakirdan/tileworld/internal/lynx"
)

const (
	signature = 0x5754

	// headerIndex is the offset of the first index entry. The index
	// stores cumulative u16 deltas, the first one counted from the
	// file start. The pack name follows the index, NUL terminated.
	headerIndex = 3

	// level record field offsets, relative to the record start
	recTimeLimit = 0
	recChips     = 2
	recDataSize  = 4
	recPassword  = 6
	recTitleOff  = 10
	recHintOff   = 12
	recTrapOff   = 14
	recClonerOff = 16
	recHeaderLen = 18

	// maxLinks bounds one linkage chunk
	maxLinks = 32
)

// File is a loaded level pack. Level records decode on demand.
type File struct {
	name  string
	data  []byte
	index []int
}

// New validates the container header and builds the level index.
func New(data []byte) (*File, error) {
	if len(data) < headerIndex {
		return nil, errors.New("pack: file too short")
	}
	if binary.LittleEndian.Uint16(data) != signature {
		return nil, errors.New("pack: bad signature")
	}

	count := int(data[2])
	nameStart := headerIndex + 2*count
	if len(data) < nameStart {
		return nil, errors.New("pack: truncated level index")
	}

	index := make([]int, count)
	addr := 0
	for i := range index {
		addr += int(binary.LittleEndian.Uint16(data[headerIndex+2*i:]))
		index[i] = addr
	}

	end := bytes.IndexByte(data[nameStart:], 0)
	if end < 0 {
		return nil, errors.New("pack: truncated header")
	}

	return &File{
		name:  string(data[nameStart : nameStart+end]),
		data:  data,
		index: index,
	}, nil
}

// ReadFile loads and validates a level pack from disk.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pack: cannot read level pack: %w", err)
	}
	return New(data)
}

// Name returns the display name of the pack.
func (f *File) Name() string { return f.name }

// Count returns the number of levels in the pack.
func (f *File) Count() int { return len(f.index) }

// Level decodes the record for the given 1-based level number.
func (f *File) Level(number int) (*lynx.Level, error) {
	if number < 1 || number > len(f.index) {
		return nil, fmt.Errorf("pack: no level %d in %q", number, f.name)
	}
	start := f.index[number-1]
	if start < 0 || start+recHeaderLen > len(f.data) {
		return nil, fmt.Errorf("pack: truncated record for level %d", number)
	}
	rec := f.data[start:]

	size := int(binary.LittleEndian.Uint16(rec[recDataSize:]))
	if recHeaderLen+size > len(rec) {
		return nil, fmt.Errorf("pack: truncated record for level %d", number)
	}

	grid, err := lzss.Decode(rec[recHeaderLen : recHeaderLen+size])
	if err != nil {
		return nil, fmt.Errorf("pack: level %d: %w", number, err)
	}
	if len(grid) != layerBytes {
		return nil, fmt.Errorf("pack: bad level data for level %d", number)
	}

	lv := &lynx.Level{
		Number:        number,
		TimeLimit:     binary.LittleEndian.Uint16(rec[recTimeLimit:]),
		RequiredChips: binary.LittleEndian.Uint16(rec[recChips:]),
		Password:      string(rec[recPassword : recPassword+4]),
	}
	unpackLayers(grid, lv)

	titleOff := int(binary.LittleEndian.Uint16(rec[recTitleOff:]))
	lv.Title, err = f.readString(start + titleOff)
	if err != nil {
		return nil, fmt.Errorf("pack: level %d title: %w", number, err)
	}
	// a zero hint offset means the level has none
	if hintOff := int(binary.LittleEndian.Uint16(rec[recHintOff:])); hintOff != 0 {
		lv.Hint, err = f.readString(start + hintOff)
		if err != nil {
			return nil, fmt.Errorf("pack: level %d hint: %w", number, err)
		}
	}

	trapOff := int(binary.LittleEndian.Uint16(rec[recTrapOff:]))
	lv.TrapLinks, err = f.readLinkage(start + trapOff)
	if err != nil {
		return nil, fmt.Errorf("pack: level %d trap links: %w", number, err)
	}
	clonerOff := int(binary.LittleEndian.Uint16(rec[recClonerOff:]))
	lv.ClonerLinks, err = f.readLinkage(start + clonerOff)
	if err != nil {
		return nil, fmt.Errorf("pack: level %d cloner links: %w", number, err)
	}

	return lv, nil
}

func (f *File) readString(pos int) (string, error) {
	if pos < 0 || pos >= len(f.data) {
		return "", errors.New("offset out of range")
	}
	end := bytes.IndexByte(f.data[pos:], 0)
	if end < 0 {
		return "", errors.New("unterminated string")
	}
	return string(f.data[pos : pos+end]), nil
}

func (f *File) readLinkage(pos int) ([]lynx.Link, error) {
	if pos < 0 || pos >= len(f.data) {
		return nil, errors.New("offset out of range")
	}
	count := int(f.data[pos])
	pos++
	if pos+4*count > len(f.data) {
		return nil, errors.New("truncated linkage chunk")
	}

	links := make([]lynx.Link, 0, count)
	for i := 0; i < count; i++ {
		links = append(links, lynx.Link{
			ButtonX: f.data[pos],
			ButtonY: f.data[pos+1],
			TargetX: f.data[pos+2],
			TargetY: f.data[pos+3],
		})
		pos += 4
	}
	return links, nil
}
