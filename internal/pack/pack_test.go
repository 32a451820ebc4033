package pack

import (
	"encoding/binary"
	"slices"
	"strings"
	"testing"

	"github.com/vovakirdan/tileworld/internal/lynx"
)

func sampleLevel(number int) *lynx.Level {
	lv := &lynx.Level{
		Number:        number,
		Title:         "Sample Level",
		Password:      "ABCD",
		Hint:          "WATCH OUT FOR THE BLOCKS",
		TimeLimit:     1200,
		RequiredChips: 3,
		TrapLinks:     []lynx.Link{{ButtonX: 5, ButtonY: 5, TargetX: 8, TargetY: 5}},
		ClonerLinks:   []lynx.Link{{ButtonX: 1, ButtonY: 2, TargetX: 3, TargetY: 4}},
	}
	// arbitrary but alignment-hostile layer patterns
	for i := range lv.Bottom {
		lv.Bottom[i] = lynx.Tile((i*7 + 3) & tileMask)
		lv.Top[i] = lynx.Actor((i*13 + 1) & tileMask)
	}
	return lv
}

func TestWriteReadRoundTrip(t *testing.T) {
	w, err := NewWriter("test", 2)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	lv1 := sampleLevel(1)
	lv2 := sampleLevel(2)
	lv2.Password = "WXYZ"
	lv2.Hint = ""
	lv2.TimeLimit = 0

	if err := w.WriteLevel(lv1); err != nil {
		t.Fatalf("WriteLevel(1): %v", err)
	}
	if err := w.WriteLevel(lv2); err != nil {
		t.Fatalf("WriteLevel(2): %v", err)
	}

	f, err := New(w.Bytes())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := f.Name(); got != "TEST" {
		t.Errorf("pack name mismatch: %q vs %q", got, "TEST")
	}
	if got := f.Count(); got != 2 {
		t.Errorf("level count mismatch: %d vs 2", got)
	}

	got, err := f.Level(1)
	if err != nil {
		t.Fatalf("Level(1): %v", err)
	}
	if got.Title != lv1.Title {
		t.Errorf("title mismatch: %q vs %q", got.Title, lv1.Title)
	}
	if got.Password != lv1.Password {
		t.Errorf("password mismatch: %q vs %q", got.Password, lv1.Password)
	}
	if got.Hint != lv1.Hint {
		t.Errorf("hint mismatch: %q vs %q", got.Hint, lv1.Hint)
	}
	if got.TimeLimit != lv1.TimeLimit {
		t.Errorf("time limit mismatch: %d vs %d", got.TimeLimit, lv1.TimeLimit)
	}
	if got.RequiredChips != lv1.RequiredChips {
		t.Errorf("required chips mismatch: %d vs %d", got.RequiredChips, lv1.RequiredChips)
	}
	if got.Bottom != lv1.Bottom {
		t.Errorf("bottom layer mismatch")
	}
	if got.Top != lv1.Top {
		t.Errorf("top layer mismatch")
	}
	if !slices.Equal(got.TrapLinks, lv1.TrapLinks) {
		t.Errorf("trap links mismatch: %v vs %v", got.TrapLinks, lv1.TrapLinks)
	}
	if !slices.Equal(got.ClonerLinks, lv1.ClonerLinks) {
		t.Errorf("cloner links mismatch: %v vs %v", got.ClonerLinks, lv1.ClonerLinks)
	}

	got, err = f.Level(2)
	if err != nil {
		t.Fatalf("Level(2): %v", err)
	}
	if got.Hint != "" {
		t.Errorf("hint mismatch: %q vs empty", got.Hint)
	}
	if got.TimeLimit != 0 {
		t.Errorf("time limit mismatch: %d vs 0", got.TimeLimit)
	}
	if got.Password != "WXYZ" {
		t.Errorf("password mismatch: %q vs %q", got.Password, "WXYZ")
	}
}

func TestTileBitOrder(t *testing.T) {
	buf := make([]byte, 3)
	putTile(buf, 0, 0x21)
	putTile(buf, 1, 0x15)
	// six bits per tile, LSB first
	if buf[0] != 0x61 || buf[1] != 0x05 {
		t.Errorf("packed bytes mismatch: %#x %#x", buf[0], buf[1])
	}
	if getTile(buf, 0) != 0x21 || getTile(buf, 1) != 0x15 {
		t.Errorf("unpacked tiles mismatch: %#x %#x", getTile(buf, 0), getTile(buf, 1))
	}
}

func TestWriterValidation(t *testing.T) {
	if _, err := NewWriter("", 1); err == nil {
		t.Errorf("empty pack name accepted")
	}
	if _, err := NewWriter("far too long name", 1); err == nil {
		t.Errorf("long pack name accepted")
	}
	if _, err := NewWriter("bad/name", 1); err == nil {
		t.Errorf("bad pack name character accepted")
	}
	if _, err := NewWriter("ok", 0); err == nil {
		t.Errorf("zero level count accepted")
	}
	if _, err := NewWriter("ok", 256); err == nil {
		t.Errorf("overlong level count accepted")
	}

	cases := []struct {
		name   string
		change func(*lynx.Level)
	}{
		{"lowercase password", func(lv *lynx.Level) { lv.Password = "abcd" }},
		{"long password", func(lv *lynx.Level) { lv.Password = "ABCDE" }},
		{"empty title", func(lv *lynx.Level) { lv.Title = "" }},
		{"long title", func(lv *lynx.Level) { lv.Title = strings.Repeat("A", 40) }},
		{"bad title character", func(lv *lynx.Level) { lv.Title = "TAB\tHERE" }},
		{"long hint", func(lv *lynx.Level) { lv.Hint = strings.Repeat("B", 128) }},
		{"too many links", func(lv *lynx.Level) {
			lv.TrapLinks = make([]lynx.Link, 33)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, err := NewWriter("ok", 1)
			if err != nil {
				t.Fatalf("NewWriter: %v", err)
			}
			lv := sampleLevel(1)
			tc.change(lv)
			if err := w.WriteLevel(lv); err == nil {
				t.Errorf("invalid level accepted")
			}
		})
	}
}

func TestWriterLevelCountEnforced(t *testing.T) {
	w, err := NewWriter("ok", 1)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.WriteLevel(sampleLevel(1)); err != nil {
		t.Fatalf("WriteLevel: %v", err)
	}
	if err := w.WriteLevel(sampleLevel(2)); err == nil {
		t.Errorf("extra level accepted")
	}
}

func TestReaderRejectsBadHeader(t *testing.T) {
	if _, err := New([]byte{0x54}); err == nil {
		t.Errorf("short file accepted")
	}
	if _, err := New([]byte{0x12, 0x34, 0}); err == nil {
		t.Errorf("bad signature accepted")
	}
	// claims five levels but carries no index
	if _, err := New([]byte{0x54, 0x57, 5}); err == nil {
		t.Errorf("truncated index accepted")
	}
}

func TestReaderLevelOutOfRange(t *testing.T) {
	w, err := NewWriter("ok", 1)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.WriteLevel(sampleLevel(1)); err != nil {
		t.Fatalf("WriteLevel: %v", err)
	}
	f, err := New(w.Bytes())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := f.Level(0); err == nil {
		t.Errorf("level 0 accepted")
	}
	if _, err := f.Level(2); err == nil {
		t.Errorf("level 2 accepted")
	}
}

func TestReaderRejectsBadLayerData(t *testing.T) {
	w, err := NewWriter("ok", 1)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.WriteLevel(sampleLevel(1)); err != nil {
		t.Fatalf("WriteLevel: %v", err)
	}

	data := w.Bytes()
	f, err := New(data)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// zero out the compressed size so the layers come up short
	binary.LittleEndian.PutUint16(data[f.index[0]+recDataSize:], 0)
	if _, err := f.Level(1); err == nil {
		t.Errorf("empty layer data accepted")
	}
}
