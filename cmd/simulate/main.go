// Command simulate runs a character through a scripted input timeline without
// a window and prints the events it produces.
package main

import (
	_ "embed"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/milk9111/mechlite/ecs"
	"github.com/milk9111/mechlite/ecs/component"
	"github.com/milk9111/mechlite/ecs/entity"
	"github.com/milk9111/mechlite/ecs/system"
	"github.com/milk9111/mechlite/event"
	"github.com/milk9111/mechlite/levels"
	"github.com/milk9111/mechlite/physics"
	"github.com/milk9111/mechlite/tuning"
	"github.com/milk9111/mechlite/view"
)

const frame = time.Second / 60

//go:embed default.yaml
var defaultTimeline []byte

func main() {
	levelName := flag.String("level", "sandbox.yaml", "level file in levels/")
	tuningName := flag.String("tuning", "", "tuning file in tuning/ (defaults to default.yaml)")
	timelinePath := flag.String("timeline", "", "input timeline YAML (defaults to a built-in run)")
	debug := flag.Bool("debug", false, "log rejected actions")
	flag.Parse()

	data := defaultTimeline
	if *timelinePath != "" {
		b, err := os.ReadFile(*timelinePath)
		if err != nil {
			log.Fatalf("read timeline: %v", err)
		}
		data = b
	}
	tl, err := ParseTimeline(data)
	if err != nil {
		log.Fatal(err)
	}
	cfg, err := tuning.Load(*tuningName)
	if err != nil {
		log.Fatal(err)
	}
	lvl, err := levels.LoadLevelFromFS(*levelName)
	if err != nil {
		log.Fatal(err)
	}

	res, err := Run(lvl, cfg, tl, *debug)
	if err != nil {
		log.Fatal(err)
	}
	for _, line := range res.Lines {
		fmt.Println(line)
	}
	fmt.Printf("\nfinal position (%.2f, %.2f) energy %.1f grounded=%t\n", res.Position.X, res.Position.Y, res.Energy, res.Grounded)
	fmt.Printf("jumps=%d dashes=%d landings=%d\n", res.Jumps, res.Dashes, res.Landings)
}

type Result struct {
	Lines    []string
	Position struct{ X, Y float64 }
	Energy   float64
	Grounded bool
	Jumps    int
	Dashes   int
	Landings int
}

// Run builds a world for lvl, plays tl against one character and reports
// what happened.
func Run(lvl *levels.Level, cfg tuning.Config, tl Timeline, debug bool) (Result, error) {
	space := physics.NewSpace(physics.DefaultGravity)
	space.BuildLevel(lvl)

	w := ecs.NewWorld(frame)
	pb := newPlayback(tl)
	w.AddSystem(system.NewInputSystemWith(func() component.Input {
		return pb.Sample(w.Clock().Now())
	}))
	w.AddSystem(system.NewLocomotionSystem())
	w.AddSystem(system.NewPhysicsSystem(space))
	w.AddSystem(system.NewRespawnSystem(-5))

	frames := int(tl.Duration / frame)
	lines := view.NewEventLog(w.Events(), w.Clock(), frames+1)
	defer lines.Close()
	rec := event.Record(w.Events())
	defer rec.Stop()

	e, err := entity.NewCharacter(w, space, entity.CharacterOptions{
		Config:     cfg,
		Spawn:      lvl.Spawn(),
		Controlled: true,
	})
	if err != nil {
		return Result{}, err
	}
	loco, _ := ecs.Get(w, e, component.LocomotionComponent.Kind())
	loco.Character.SetDebug(debug)

	for i := 0; i < frames; i++ {
		w.Update(frame)
	}

	var res Result
	res.Lines = lines.Lines()
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		p := body.Body.Position()
		res.Position.X, res.Position.Y = p.X, p.Y
	}
	res.Energy = loco.Character.Energy()
	res.Grounded = loco.Character.Grounded()
	res.Jumps = rec.Count(event.KindJumped)
	res.Dashes = rec.Count(event.KindDashed)
	for _, g := range rec.GroundChanged {
		if g.Grounded {
			res.Landings++
		}
	}
	return res, nil
}
