package levels

import (
	"errors"
	"testing"
)

func TestLoadSandbox(t *testing.T) {
	lvl, err := LoadLevelFromFS("sandbox.yaml")
	if err != nil {
		t.Fatalf("load sandbox: %v", err)
	}
	if lvl.Width() != 40 || lvl.Height() != 10 {
		t.Fatalf("unexpected size %dx%d", lvl.Width(), lvl.Height())
	}
	spawn := lvl.Spawn()
	if spawn.X != 2.5 || spawn.Y != 2.5 {
		t.Fatalf("unexpected spawn %v", spawn)
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"ok", "rows: [\"#.#\"]", nil},
		{"empty", "rows: []", ErrEmptyLevel},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lvl, err := ParseLevel([]byte(c.data))
			if c.wantErr != nil {
				if !errors.Is(err, c.wantErr) {
					t.Fatalf("expected %v, got %v", c.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if lvl.TileSize != 1 {
				t.Fatalf("expected default tile size 1, got %v", lvl.TileSize)
			}
		})
	}
	if _, err := ParseLevel([]byte("rows: [")); err == nil {
		t.Fatalf("expected unmarshal error")
	}
}

func TestSolidAndTileBB(t *testing.T) {
	lvl := &Level{TileSize: 2, Rows: []string{"..", "#."}}
	if !lvl.Solid(0, 1) || lvl.Solid(1, 1) || lvl.Solid(5, 5) || lvl.Solid(-1, 0) {
		t.Fatalf("unexpected solidity")
	}
	bb := lvl.TileBB(0, 1)
	if bb.L != 0 || bb.B != 0 || bb.R != 2 || bb.T != 2 {
		t.Fatalf("bottom row should sit on y=0, got %+v", bb)
	}
	if top := lvl.TileBB(1, 0); top.B != 2 {
		t.Fatalf("top row should sit above the bottom row, got %+v", top)
	}
}
