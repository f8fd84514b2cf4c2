// Command frostdemo renders frost scenes to PNG.
//
// Usage:
//
//	frostdemo -scenario showcase -o showcase.png
//	frostdemo -scene card.toml -o card.png -watch
//	frostdemo -scenario b -dump > b.toml
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/frost"
	"github.com/gogpu/frost/gpu"
	"github.com/gogpu/frost/scenefile"
)

func main() {
	var (
		scenario = flag.String("scenario", "showcase", "built-in scene: "+strings.Join(scenarioNames(), ", "))
		scene    = flag.String("scene", "", "TOML scene file (overrides -scenario)")
		output   = flag.String("o", "frost.png", "output PNG file")
		useGPU   = flag.Bool("gpu", true, "render on the GPU when a device is available")
		workers  = flag.Int("workers", 0, "CPU shading goroutines (0 = GOMAXPROCS)")
		watch    = flag.Bool("watch", false, "re-render whenever the scene file changes")
		dump     = flag.Bool("dump", false, "write the scene as TOML to stdout instead of rendering")
	)
	flag.Parse()

	load := func() (*scenefile.Scene, error) {
		if *scene != "" {
			return scenefile.Load(*scene)
		}
		mk, ok := scenarios[*scenario]
		if !ok {
			return nil, fmt.Errorf("unknown scenario %q", *scenario)
		}
		return mk(), nil
	}

	if *dump {
		s, err := load()
		if err != nil {
			log.Fatal(err)
		}
		if err := s.Encode(os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}

	opts := []frost.RendererOption{frost.WithAccelerator(*useGPU)}
	if *workers > 0 {
		opts = append(opts, frost.WithWorkers(*workers))
	}
	r := frost.NewRenderer(opts...)
	defer r.Close()
	if *useGPU && !gpu.Ready() {
		log.Printf("GPU not available, rendering on the CPU")
	}

	render := func() error {
		s, err := load()
		if err != nil {
			return err
		}
		start := time.Now()
		pm, err := s.Render(r)
		if err != nil {
			return err
		}
		if err := pm.SavePNG(*output); err != nil {
			return fmt.Errorf("save: %w", err)
		}
		log.Printf("Saved %s (%dx%d, %d components) in %v", *output, s.Width, s.Height, len(s.Components), time.Since(start).Round(time.Millisecond))
		return nil
	}

	if err := render(); err != nil {
		if !*watch {
			log.Fatal(err)
		}
		log.Print(err)
	}
	if !*watch {
		return
	}
	if *scene == "" {
		log.Fatal("-watch needs -scene")
	}
	if err := watchScene(*scene, render); err != nil {
		log.Fatal(err)
	}
}

// watchScene calls render after every write to path until the watcher
// fails. The directory is watched so editors that replace the file on save
// keep triggering.
func watchScene(path string, render func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}
	name := filepath.Clean(path)
	log.Printf("Watching %s", name)

	// Editors often emit several events per save.
	const settle = 50 * time.Millisecond
	var pending <-chan time.Time
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != name || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			pending = time.After(settle)
		case <-pending:
			pending = nil
			if err := render(); err != nil {
				log.Print(err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
