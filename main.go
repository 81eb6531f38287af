package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/leonelquinteros/gotext"

	"badgebounce/pkg/engine/audio"
	"badgebounce/pkg/engine/bounce"
	"badgebounce/pkg/engine/input"
	"badgebounce/pkg/engine/link"
	"badgebounce/pkg/engine/scheduler"
	"badgebounce/pkg/engine/terminal"
	"badgebounce/pkg/game/config"
	"badgebounce/pkg/game/gameplay"
	"badgebounce/pkg/game/i18n"
	"badgebounce/pkg/game/renderer"
	ebitenrenderer "badgebounce/pkg/game/renderer/ebiten"
	"badgebounce/pkg/game/renderer/tui"
)

var errNoDisplay = errors.New("no display or terminal available")

// flags holds the command line. Values only override the config file when
// the flag was given explicitly.
type flags struct {
	configPath  string
	writeConfig string
	logPath     string

	renderer string
	speed    float64
	seed     int64
	label    string
	url      string
	chime    bool
	lang     string

	set map[string]bool
}

func parseFlags(args []string) (*flags, error) {
	f := &flags{set: map[string]bool{}}
	fs := flag.NewFlagSet("badgebounce", flag.ContinueOnError)

	fs.StringVar(&f.configPath, "config", "", "path to a .toml or .yaml config file")
	fs.StringVar(&f.writeConfig, "write-config", "", "write the effective config as TOML to this path and exit")
	fs.StringVar(&f.logPath, "log", "", "log file for the terminal renderer (default: discard)")
	fs.StringVar(&f.renderer, "renderer", config.RendererAuto, "auto, window or terminal")
	fs.Float64Var(&f.speed, "speed", 0, "badge speed in surface units per frame")
	fs.Int64Var(&f.seed, "seed", 0, "random seed (0 uses the clock)")
	fs.StringVar(&f.label, "label", "", "badge text")
	fs.StringVar(&f.url, "url", "", "link opened when the badge is clicked")
	fs.BoolVar(&f.chime, "chime", false, "play a tone on every edge contact")
	fs.StringVar(&f.lang, "lang", "", "UI language ("+strings.Join(i18n.Languages(), ", ")+")")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}

// apply copies explicitly set flags over cfg.
func (f *flags) apply(cfg *config.Config) {
	if f.set["renderer"] {
		cfg.Renderer = f.renderer
	}
	if f.set["speed"] {
		cfg.Speed = f.speed
		cfg.TerminalSpeed = f.speed
	}
	if f.set["seed"] {
		cfg.Seed = f.seed
	}
	if f.set["label"] {
		cfg.Label = f.label
	}
	if f.set["url"] {
		cfg.URL = f.url
	}
	if f.set["chime"] {
		cfg.Audio.Enabled = f.chime
	}
	if f.set["lang"] {
		cfg.Locale = f.lang
	}
}

// chooseRenderer resolves "auto" to a concrete backend.
func chooseRenderer(want string, hasDisplay, interactive bool) (string, error) {
	if want != config.RendererAuto {
		return want, nil
	}
	switch {
	case hasDisplay:
		return config.RendererWindow, nil
	case interactive:
		return config.RendererTerminal, nil
	default:
		return "", errNoDisplay
	}
}

// applyKeyBindings installs the [keys] overrides from the config.
func applyKeyBindings(keys map[string]string) error {
	for name, code := range keys {
		act, ok := input.ActionByName(name)
		if !ok {
			return fmt.Errorf("%w: unknown action %q in keys", config.ErrInvalid, name)
		}
		input.SetSingleBinding(act, code)
	}
	return nil
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func main() {
	f, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	renderer.InitColors()
	if _, err := i18n.Init(i18n.DefaultLanguage); err != nil {
		log.Fatal(err)
	}

	if err := run(f); err != nil {
		renderer.PrintError(err)
		os.Exit(1)
	}
}

func run(f *flags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	f.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if f.writeConfig != "" {
		if err := cfg.Save(f.writeConfig); err != nil {
			return err
		}
		renderer.PrintString("wrote VALUE{%s}\n", f.writeConfig)
		return nil
	}

	if _, err := i18n.Init(cfg.Locale); err != nil {
		return err
	}
	if err := applyKeyBindings(cfg.Keys); err != nil {
		return err
	}

	backend, err := chooseRenderer(cfg.Renderer, terminal.HasDisplay(runtime.GOOS, os.Getenv), terminal.Interactive())
	if err != nil {
		return err
	}

	help := renderer.KeyHelp()
	var r renderer.Renderer
	speed := cfg.Speed
	switch backend {
	case config.RendererTerminal:
		closeLog, err := redirectLog(f.logPath)
		if err != nil {
			return err
		}
		defer closeLog()
		speed = cfg.TerminalSpeed
		r = tui.New(tui.Options{Label: cfg.Label, Help: help})
	default:
		title := cfg.Window.Title
		if title == "" {
			title = gotext.Get("Bouncing Badge")
		}
		r = ebitenrenderer.New(ebitenrenderer.Options{
			Width:  cfg.Window.Width,
			Height: cfg.Window.Height,
			Title:  title,
			Label:  cfg.Label,
			Help:   help,
		})
	}

	if err := r.Init(); err != nil {
		return fmt.Errorf("starting %s renderer: %w", backend, err)
	}
	defer r.Close()

	colors, err := cfg.Colors()
	if err != nil {
		return err
	}

	var onContact func(bounce.Contact)
	if cfg.Audio.Enabled {
		if chime := startChime(cfg); chime != nil {
			defer chime.Close()
			onContact = func(bounce.Contact) { chime.Play() }
		}
	}

	sched := scheduler.New(time.Now)
	defer sched.Close()

	anim, err := gameplay.New(r, sched, gameplay.Options{
		Speed:     speed,
		Palette:   colors,
		Retry:     cfg.RetryPolicy(),
		Rand:      newRand(cfg.Seed),
		OnContact: onContact,
	})
	if err != nil {
		return err
	}
	anim.Start()
	defer anim.Stop()

	err = r.Run(sched, func(intent input.Intent) bool {
		switch intent.Action {
		case input.ActionQuit:
			return false
		case input.ActionTogglePause:
			if anim.TogglePause() {
				r.SetBanner(gotext.Get("PAUSED"))
			} else {
				r.SetBanner("")
			}
		case input.ActionOpenLink:
			if cfg.URL != "" {
				link.Open(cfg.URL)
			}
		}
		return true
	})
	if err != nil {
		return err
	}

	r.Close()
	scene := anim.Scene()
	fmt.Println(gotext.Get("contacts %d  colour changes %d", scene.Contacts, scene.ColorChanges))
	fmt.Println(gotext.Get("Goodbye."))
	return nil
}

// startChime opens the speaker for the configured tone. Audio is optional:
// any failure is logged and the chime is nil.
func startChime(cfg *config.Config) *audio.Chime {
	chime, err := audio.NewChime(cfg.Audio.FrequencyHz, cfg.ChimeDuration())
	if err != nil {
		log.Printf("Audio disabled: %v", err)
		return nil
	}
	if err := chime.Init(); err != nil {
		// Non-fatal, the badge bounces without sound
		log.Printf("Audio initialization failed: %v", err)
		return nil
	}
	return chime
}

// redirectLog sends log output to path, or discards it when path is empty,
// so log lines do not land on the tcell screen.
func redirectLog(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}, nil
}
