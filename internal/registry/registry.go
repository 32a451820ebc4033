// Package registry locates level packs on disk. A pack can be addressed
// either by file path or by its stored set name, so the tools accept
// "verify CHIPS" without knowing where the file lives.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tileworld/internal/pack"
)

// Pack describes one level pack found on disk.
type Pack struct {
	Name   string
	Path   string
	Levels int
}

// Scan returns every readable pack under dir, sorted by set name. Files
// that do not parse as packs are skipped.
func Scan(dir string) ([]Pack, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("registry: cannot read pack directory: %w", err)
	}

	var packs []Pack
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".twp") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		f, err := pack.ReadFile(path)
		if err != nil {
			continue
		}
		packs = append(packs, Pack{Name: f.Name(), Path: path, Levels: f.Count()})
	}

	sort.Slice(packs, func(i, j int) bool {
		return packs[i].Name < packs[j].Name
	})

	return packs, nil
}

// Find resolves ref to a pack. A ref naming an existing file wins;
// anything else is matched case-insensitively against the set names of
// the packs under dir.
func Find(dir, ref string) (Pack, error) {
	if fi, err := os.Stat(ref); err == nil && !fi.IsDir() {
		f, err := pack.ReadFile(ref)
		if err != nil {
			return Pack{}, err
		}
		return Pack{Name: f.Name(), Path: ref, Levels: f.Count()}, nil
	}

	packs, err := Scan(dir)
	if err != nil {
		return Pack{}, err
	}
	for _, p := range packs {
		if strings.EqualFold(p.Name, ref) {
			return p, nil
		}
	}

	return Pack{}, fmt.Errorf("registry: unknown pack %q", ref)
}
