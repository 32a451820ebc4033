package pack

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/vovakirdan/tileworld/internal/lzss"
	"github.com/vovakirdan/tileworld/internal/lynx"
)

// The character sets accepted by the target font. Hints additionally
// allow line breaks.
var (
	passwordPattern = regexp.MustCompile(`^[A-Z]{4}$`)
	namePattern     = regexp.MustCompile(`^[A-Za-z0-9.,!?'"\-=#():; ]+$`)
	titlePattern    = regexp.MustCompile(`^[A-Za-z0-9.,!?'"\-_=#():;* ]+$`)
	hintPattern     = regexp.MustCompile(`^[A-Za-z0-9.,!?'"\-_=#():;* \n]+$`)
)

// Writer assembles a level pack. Create it with NewWriter, append every
// level in order, then flush the container with WriteFile or Bytes.
type Writer struct {
	data    []byte
	count   int
	written int
	last    int
}

// NewWriter starts a pack with the given display name and level count.
// The name is stored uppercased.
func NewWriter(name string, count int) (*Writer, error) {
	if count < 1 || count > 255 {
		return nil, fmt.Errorf("pack: level count must be between 1 and 255 (got %d)", count)
	}
	name = strings.ToUpper(name)
	if len(name) >= 12 || !namePattern.MatchString(name) {
		return nil, fmt.Errorf("pack: invalid level pack name %q", name)
	}

	w := &Writer{count: count}
	w.data = binary.LittleEndian.AppendUint16(w.data, signature)
	w.data = append(w.data, byte(count))
	w.data = append(w.data, make([]byte, 2*count)...)
	w.data = append(w.data, name...)
	w.data = append(w.data, 0)
	return w, nil
}

// WriteLevel appends one level record and fills in its index entry.
func (w *Writer) WriteLevel(lv *lynx.Level) error {
	if w.written == w.count {
		return errors.New("pack: all level records already written")
	}
	if !passwordPattern.MatchString(lv.Password) {
		return fmt.Errorf("pack: password must be 4 uppercase letters (got %q)", lv.Password)
	}
	if len(lv.Title) == 0 || len(lv.Title) >= 40 || !titlePattern.MatchString(lv.Title) {
		return fmt.Errorf("pack: invalid title %q", lv.Title)
	}
	if lv.Hint != "" && (len(lv.Hint) >= 128 || !hintPattern.MatchString(lv.Hint)) {
		return fmt.Errorf("pack: invalid hint %q", lv.Hint)
	}

	start := len(w.data)
	w.patch16(headerIndex+2*w.written, uint16(start-w.last))
	w.last = start

	w.append16(lv.TimeLimit)
	w.append16(lv.RequiredChips)
	w.append16(0) // layer data size, patched below
	w.data = append(w.data, lv.Password...)
	w.data = append(w.data, make([]byte, 8)...) // chunk offsets, patched below

	layers := packLayers(lv)
	compressed := lzss.Encode(layers)
	verify, err := lzss.Decode(compressed)
	if err != nil || !bytes.Equal(verify, layers) {
		return errors.New("pack: compression error")
	}
	w.data = append(w.data, compressed...)
	w.patch16(start+recDataSize, uint16(len(compressed)))

	w.patch16(start+recTitleOff, uint16(len(w.data)-start))
	w.data = append(w.data, lv.Title...)
	w.data = append(w.data, 0)

	// levels without a hint keep the zero offset
	if lv.Hint != "" {
		w.patch16(start+recHintOff, uint16(len(w.data)-start))
		w.data = append(w.data, lv.Hint...)
		w.data = append(w.data, 0)
	}

	w.patch16(start+recTrapOff, uint16(len(w.data)-start))
	if err := w.writeLinkage(lv.TrapLinks); err != nil {
		return err
	}
	w.patch16(start+recClonerOff, uint16(len(w.data)-start))
	if err := w.writeLinkage(lv.ClonerLinks); err != nil {
		return err
	}

	w.written++
	return nil
}

// Bytes returns the assembled container.
func (w *Writer) Bytes() []byte {
	return w.data
}

// WriteFile writes the assembled container to disk. It fails when fewer
// levels were written than the index was sized for.
func (w *Writer) WriteFile(path string) error {
	if w.written != w.count {
		return fmt.Errorf("pack: wrote %d of %d levels", w.written, w.count)
	}
	if err := os.WriteFile(path, w.data, 0o644); err != nil {
		return fmt.Errorf("pack: cannot write level pack: %w", err)
	}
	return nil
}

func (w *Writer) writeLinkage(links []lynx.Link) error {
	if len(links) > maxLinks {
		return fmt.Errorf("pack: too many links (got %d)", len(links))
	}
	w.data = append(w.data, byte(len(links)))
	for _, l := range links {
		w.data = append(w.data, l.ButtonX, l.ButtonY, l.TargetX, l.TargetY)
	}
	return nil
}

func (w *Writer) append16(v uint16) {
	w.data = binary.LittleEndian.AppendUint16(w.data, v)
}

func (w *Writer) patch16(at int, v uint16) {
	binary.LittleEndian.PutUint16(w.data[at:], v)
}
