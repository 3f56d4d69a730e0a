package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"cogentcore.org/core/base/errors"

	"physics-tutorial/internal/audio"
	"physics-tutorial/internal/engineconfig"
	"physics-tutorial/internal/env"
	"physics-tutorial/internal/logger"
	"physics-tutorial/internal/tutorial"
	"physics-tutorial/internal/visualdebugger"
)

const (
	title       = "Tutorial 3"
	width       = 1800
	height      = 1000
	audioVolume = 0.3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

type settings struct {
	backend string
	layout  string
	audio   bool
}

// parseFlags reads -backend, -layout and -audio. Defaults come from prefs.
func parseFlags(args []string, prefs engineconfig.EnginePrefs, stderr io.Writer) (settings, error) {
	fs := flag.NewFlagSet("tutorial", flag.ContinueOnError)
	fs.SetOutput(stderr)
	s := settings{}
	fs.StringVar(&s.backend, "backend", prefs.Backend, "renderer: raylib (window) or tcell (terminal)")
	fs.StringVar(&s.layout, "layout", prefs.Layout, "scene layout YAML; missing file means the built-in layout")
	fs.BoolVar(&s.audio, "audio", prefs.Audio, "play sound cues")
	err := fs.Parse(args)
	return s, err
}

func run(args []string, stderr io.Writer) int {
	errors.Log(env.Load(".env"))
	prefs, _ := engineconfig.Load()
	engineconfig.ApplyEnv(&prefs)
	s, err := parseFlags(args, prefs, stderr)
	if err != nil {
		return 2
	}
	prefs.Backend, prefs.Layout, prefs.Audio = s.backend, s.layout, s.audio

	// A terminal backend owns stderr's screen, so the log only goes to the file.
	var echo io.Writer = stderr
	if s.backend == visualdebugger.BackendTcell {
		echo = nil
	}
	log := logger.NewAt(logger.LogFilePath, echo)

	var cues tutorial.CuePlayer
	if s.audio {
		player := audio.NewPlayer(audioVolume)
		if errors.Log(player.Init()) == nil {
			defer player.Close()
			cues = player
		}
	}

	var vd *visualdebugger.Debugger
	code := launch(stderr, func() (starter, error) {
		layout, err := tutorial.LoadLayout(s.layout)
		if err != nil {
			return nil, err
		}
		sc := tutorial.New(tutorial.WithLayout(layout), tutorial.WithLogger(log), tutorial.WithCues(cues))
		vd, err = visualdebugger.Init(visualdebugger.Options{
			Title:   title,
			Width:   width,
			Height:  height,
			Backend: s.backend,
			Actions: actions(sc),
			Log:     log,
			Prefs:   prefs,
		}, sc)
		return vd, err
	})
	if vd != nil {
		errors.Log(engineconfig.Save(vd.Prefs()))
	}
	return code
}

type starter interface {
	Start() error
}

// launch initializes and runs the harness. A failed initialization prints the error and
// still exits with status 0; only a failure while running is reported as an error.
func launch(stderr io.Writer, initFn func() (starter, error)) int {
	h, err := initFn()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 0
	}
	if err := h.Start(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}
