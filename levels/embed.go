package levels

import (
	"embed"
		"errors"
	"fmt"
	"io/fs"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

const (
	TileEmpty = '.'
	TileSolid = '#'
	TileSpawn = 'S'
)

var ErrEmptyLevel = errors.New("levels: level has no rows")

// Level is a rectangular tile layout. Rows are listed top to bottom; world
// space is y-up with row len(Rows)-1 sitting on y=0.
type Level struct {
	Name     string   `yaml:"name"`
	TileSize float64  `yaml:"tile_size"`
	Rows     []string `yaml:"rows"`
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return ParseLevel(data)
}

func ParseLevel(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if len(lvl.Rows) == 0 {
		return nil, ErrEmptyLevel
	}
	if lvl.TileSize <= 0 {
		lvl.TileSize = 1
	}
	return &lvl, nil
}

func (l *Level) Width() int {
	if l == nil {
		return 0
	}
	w := 0
	for _, row := range l.Rows {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

func (l *Level) Height() int {
	if l == nil {
		return 0
	}
	return len(l.Rows)
}

// Solid reports whether tile (x, y) blocks movement. y counts rows from the
// top; anything outside the layout is empty.
func (l *Level) Solid(x, y int) bool {
	if l == nil || y < 0 || y >= len(l.Rows) || x < 0 || x >= len(l.Rows[y]) {
		return false
	}
	return l.Rows[y][x] == TileSolid
}

// TileBB returns the world-space box of tile (x, y).
func (l *Level) TileBB(x, y int) cp.BB {
	size := l.TileSize
	bottom := float64(l.Height()-1-y) * size
	left := float64(x) * size
	return cp.BB{L: left, B: bottom, R: left + size, T: bottom + size}
}

// Spawn returns the world position of the first 'S' tile's center, or the
// top-left tile when none is marked.
func (l *Level) Spawn() cp.Vector {
	if l == nil {
		return cp.Vector{}
	}
	for y, row := range l.Rows {
		for x := 0; x < len(row); x++ {
			if row[x] == TileSpawn {
				return l.tileCenter(x, y)
			}
		}
	}
	return l.tileCenter(0, 0)
}

func (l *Level) tileCenter(x, y int) cp.Vector {
	bb := l.TileBB(x, y)
	return cp.Vector{X: (bb.L + bb.R) / 2, Y: (bb.B + bb.T) / 2}
}
