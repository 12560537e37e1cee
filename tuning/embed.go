package tuning

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultFile is the tuning file the sandbox starts from.
const DefaultFile = "default.yaml"

//go:embed *.yaml
var TuningFS embed.FS

// Read returns the raw bytes of a tuning file, preferring an on-disk copy under
// tuning/ so designers can edit values without rebuilding.
func Read(name string) ([]byte, error) {
	clean := cleanPath(name)
	if data, err := os.ReadFile(DiskPath(clean)); err == nil {
		return data, nil
	}
	return TuningFS.ReadFile(clean)
}

// Load reads and parses a tuning file.
func Load(name string) (Config, error) {
	data, err := Read(name)
	if err != nil {
		return Config{}, fmt.Errorf("tuning: load %s: %w", name, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("tuning: parse %s: %w", name, err)
	}
	return cfg, nil
}

func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(DiskPath(cleanPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanPath(path string) string {
	if path == "" {
		return DefaultFile
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "tuning/"); ok {
		s = after
	}
	return s
}

// DiskPath maps a tuning file name to its location in the working tree.
func DiskPath(clean string) string {
	return filepath.Join("tuning", filepath.FromSlash(clean))
}
