package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/mechlite/ecs"
	"github.com/milk9111/mechlite/ecs/component"
	"github.com/milk9111/mechlite/ecs/entity"
	"github.com/milk9111/mechlite/ecs/system"
	"github.com/milk9111/mechlite/levels"
	"github.com/milk9111/mechlite/locomotion"
	"github.com/milk9111/mechlite/physics"
	"github.com/milk9111/mechlite/stats"
	"github.com/milk9111/mechlite/tuning"
	"github.com/milk9111/mechlite/view"
	"golang.design/x/clipboard"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	pixelsPerUnit = 32
	frameStep     = time.Second / 60
	// bodies this far below the level floor are respawned
	killMargin = 5
)

type Options struct {
	Level       string
	Tuning      string
	StatsScript string
	Debug       bool
	Watch       bool
}

type Game struct {
	opts   Options
	frames int
	paused bool
	debug  bool

	world  *ecs.World
	space  *physics.Space
	level  *levels.Level
	loco   *system.LocomotionSystem
	player ecs.Entity
	cfg    tuning.Config

	script    *stats.Script
	statLevel float64

	camera  *view.Camera
	events  *view.EventLog
	pauseUI *ebitenui.UI
	watcher *tuning.Watcher

	clipboardOK bool
	status      string
}

func NewGame(opts Options) (*Game, error) {
	cfg, err := tuning.Load(opts.Tuning)
	if err != nil {
		return nil, err
	}

	lvl, err := levels.LoadLevelFromFS(levelFile(opts.Level))
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", opts.Level, err)
	}

	g := &Game{
		opts:      opts,
		debug:     opts.Debug,
		level:     lvl,
		cfg:       cfg,
		statLevel: 1,
	}

	g.space = physics.NewSpace(physics.DefaultGravity)
	merged := g.space.BuildLevel(lvl)
	log.Printf("loaded level %s: %dx%d tiles, %d colliders", opts.Level, lvl.Width(), lvl.Height(), merged)

	g.world = ecs.NewWorld(frameStep)
	g.loco = system.NewLocomotionSystem()
	g.world.AddSystem(system.NewInputSystem())
	g.world.AddSystem(g.loco)
	g.world.AddSystem(system.NewPhysicsSystem(g.space))
	g.world.AddSystem(system.NewRespawnSystem(-killMargin))

	var provider locomotion.StatProvider
	if opts.StatsScript != "" {
		src, err := os.ReadFile(opts.StatsScript)
		if err != nil {
			return nil, fmt.Errorf("stats script: %w", err)
		}
		script, err := stats.NewScript(src, map[string]float64{"level": g.statLevel})
		if err != nil {
			return nil, err
		}
		g.script = script
		provider = script
	}

	// the event log subscribes before the character so it sees initialization
	g.events = view.NewEventLog(g.world.Events(), g.world.Clock(), view.DefaultLogLines)

	spawn := lvl.Spawn()
	g.player, err = entity.NewCharacter(g.world, g.space, entity.CharacterOptions{
		Config:     cfg,
		Spawn:      spawn,
		Stats:      provider,
		Controlled: true,
	})
	if err != nil {
		return nil, err
	}
	if c := g.character(); c != nil {
		c.SetDebug(g.debug)
	}

	g.camera = view.NewCamera(baseWidth, baseHeight, pixelsPerUnit)
	g.camera.SetWorldBounds(float64(lvl.Width())*lvl.TileSize, float64(lvl.Height())*lvl.TileSize)
	g.camera.SnapTo(spawn)

	if opts.Watch {
		w, err := tuning.NewWatcher("tuning")
		if err != nil {
			log.Printf("tuning watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	} else {
		g.clipboardOK = true
	}

	g.pauseUI = NewPauseUI(g)
	return g, nil
}

func levelFile(name string) string {
	if name == "" {
		name = "sandbox"
	}
	name = filepath.Base(name)
	if !strings.HasSuffix(name, ".yaml") {
		name += ".yaml"
	}
	return name
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.events.Close()
}

func (g *Game) Update() error {
	g.frames++
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
		g.character().SetDebug(g.debug)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.copyTuning()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.resetCharacter()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.levelUp()
	}

	g.world.Update(time.Second / time.Duration(ebiten.TPS()))

	if body := g.playerBody(); body != nil {
		g.camera.Follow(body.Position())
	}
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case path, ok := <-g.watcher.Events:
		if !ok {
			g.watcher = nil
			return
		}
		if filepath.Base(path) == filepath.Base(tuningFile(g.opts.Tuning)) {
			g.reloadTuning()
		}
	case err, ok := <-g.watcher.Errors:
		if ok && err != nil {
			log.Printf("tuning watch: %v", err)
		}
	default:
	}
}

func tuningFile(name string) string {
	if name == "" {
		return tuning.DefaultFile
	}
	return name
}

// reloadTuning reads the tuning file again and hands it to every character.
// A bad file keeps the current values.
func (g *Game) reloadTuning() {
	cfg, err := tuning.Load(g.opts.Tuning)
	if err != nil {
		g.setStatus("reload failed: %v", err)
		return
	}
	g.cfg = cfg
	g.loco.Reconfigure(cfg)
	if mod, ok := tuning.ModTime(tuningFile(g.opts.Tuning)); ok {
		g.setStatus("tuning reloaded (modified %s)", mod.Format(time.TimeOnly))
		return
	}
	g.setStatus("tuning reloaded from embedded copy")
}

func (g *Game) copyTuning() {
	if !g.clipboardOK {
		g.setStatus("clipboard unavailable")
		return
	}
	data, err := tuning.Marshal(g.cfg)
	if err != nil {
		g.setStatus("copy failed: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.setStatus("tuning copied to clipboard")
}

// resetCharacter puts the player back on its spawn with a full pool and a
// ready dash.
func (g *Game) resetCharacter() {
	loco, ok := ecs.Get(g.world, g.player, component.LocomotionComponent.Kind())
	if !ok {
		return
	}
	if body := g.playerBody(); body != nil {
		body.SetPosition(loco.Spawn)
		g.camera.SnapTo(loco.Spawn)
	}
	if c := loco.Character; c != nil {
		c.EnergyPool().ResetToMax()
		c.DashAbility().ResetCooldown()
	}
	g.setStatus("character reset")
}

// levelUp feeds the stats script a higher level; the pool picks up the new
// maximum on its next tick.
func (g *Game) levelUp() {
	if g.script == nil {
		return
	}
	next := g.statLevel + 1
	if err := g.script.Set("level", next); err != nil {
		g.setStatus("stats: %v", err)
		return
	}
	g.statLevel = next
	g.setStatus("level %.0f: max energy %.0f", next, g.script.MaxEnergy())
}

func (g *Game) setStatus(format string, args ...any) {
	g.status = fmt.Sprintf(format, args...)
	log.Print(g.status)
}

func (g *Game) character() *locomotion.Character {
	loco, ok := ecs.Get(g.world, g.player, component.LocomotionComponent.Kind())
	if !ok {
		return nil
	}
	return loco.Character
}

func (g *Game) playerBody() *physics.Body {
	body, ok := ecs.Get(g.world, g.player, component.PhysicsBodyComponent.Kind())
	if !ok {
		return nil
	}
	return body.Body
}

func (g *Game) playerBB() (cp.BB, bool) {
	body := g.playerBody()
	if body == nil {
		return cp.BB{}, false
	}
	p := body.Position()
	w, h := body.Size()
	return cp.BB{L: p.X - w/2, B: p.Y - h/2, R: p.X + w/2, T: p.Y + h/2}, true
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawWorld(screen)
	g.drawHUD(screen)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
