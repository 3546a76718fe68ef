package video

import (
	"os"
	"path/filepath"
)

// scratchFiles lists the regular files currently in the scratch area.
func (g *Generator) scratchFiles() []string {
	entries, err := os.ReadDir(g.cfg.TempDir)
	if err != nil {
		return nil
	}
	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			files = append(files, filepath.Join(g.cfg.TempDir, e.Name()))
		}
	}
	return files
}

// clearTempFiles empties the scratch area. Directories are left alone.
func (g *Generator) clearTempFiles() {
	for _, f := range g.scratchFiles() {
		os.Remove(f)
	}
}
