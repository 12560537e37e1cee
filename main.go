package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "sandbox", "level name in levels/ (basename, .yaml optional)")
	tuningName := flag.String("tuning", "", "tuning file in tuning/ (defaults to default.yaml)")
	statsScript := flag.String("stats", "", "tengo script computing max_energy from level")
	watch := flag.Bool("watch", false, "reload tuning when files under tuning/ change")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("mechlite")

	game, err := NewGame(Options{
		Level:       *levelName,
		Tuning:      *tuningName,
		StatsScript: *statsScript,
		Debug:       *debug,
		Watch:       *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
