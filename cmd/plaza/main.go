// Command plaza opens a window and runs the animated chain plaza over a
// catalog file.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/Carmen-Shannon/oxy-plaza/common"
	"github.com/Carmen-Shannon/oxy-plaza/config"
	"github.com/Carmen-Shannon/oxy-plaza/engine"
	"github.com/Carmen-Shannon/oxy-plaza/engine/asset"
	"github.com/Carmen-Shannon/oxy-plaza/engine/camera"
	"github.com/Carmen-Shannon/oxy-plaza/engine/catalog"
	"github.com/Carmen-Shannon/oxy-plaza/engine/interaction"
	"github.com/Carmen-Shannon/oxy-plaza/engine/layout"
	"github.com/Carmen-Shannon/oxy-plaza/engine/renderer"
	"github.com/Carmen-Shannon/oxy-plaza/engine/scene"
	"github.com/Carmen-Shannon/oxy-plaza/engine/window"
)

func main() {
	configPath := pflag.StringP("config", "c", config.DefaultPath, "TOML config file")
	printConfig := pflag.Bool("print-config", false, "print the effective config as TOML and exit")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *printConfig {
		out, err := config.Encode(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Stdout.Write(out)
		return
	}

	log := common.NewLogger(cfg.Log.Level, cfg.Log.Pretty)
	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("plaza stopped")
	}
}

func run(cfg config.Config, log zerolog.Logger) error {
	entities, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	cat, err := catalog.NewCatalog(entities, catalog.WithLogger(log))
	if err != nil {
		return err
	}
	if cfg.Catalog.Watch {
		w, err := catalog.Watch(cfg.Catalog.Path, cat, log)
		if err != nil {
			log.Warn().Err(err).Msg("catalog changes will not be picked up")
		} else {
			defer w.Close()
		}
	}

	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithTransparentFramebuffer(cfg.Window.Transparent),
	)
	if err != nil {
		return fmt.Errorf("open window: %w", err)
	}
	defer win.Close()

	assets := asset.NewManager(os.DirFS(cfg.Assets.Dir),
		asset.WithWorkers(cfg.Assets.Workers),
		asset.WithIconSize(cfg.Assets.IconSize),
		asset.WithLogger(log),
	)
	resolver := layout.NewResolver(
		layout.WithPreset(layout.PresetName(cfg.Scene.Preset)),
		layout.WithEffect(cfg.Effect()),
		layout.WithLogger(log),
	)
	s, err := scene.NewScene(cat,
		scene.WithLogger(log),
		scene.WithResolver(resolver),
		scene.WithAssets(assets),
		scene.WithViewport(win.Width(), win.Height()),
		scene.WithCompactBreakpoint(cfg.Scene.CompactBreakpoint),
		scene.WithMedallionIcon(cfg.Scene.MedallionIcon),
		scene.WithDirectorOptions(
			camera.WithAutoplay(cfg.Camera.Autoplay),
			camera.WithAutoplayInterval(cfg.Camera.AutoplayInterval),
			camera.WithSmoothTime(float32(cfg.Camera.Damping)),
		),
	)
	if err != nil {
		assets.Close()
		return fmt.Errorf("compose scene: %w", err)
	}

	s.SetNavigateCallback(func(ev interaction.NavigateEvent) {
		log.Info().
			Stringer("kind", ev.Kind).
			Str("chain", ev.Entity.Name).
			Str("target", ev.Target).
			Msg("navigate")
	})
	s.SetHoverChangedCallback(func(sel interaction.HoverSelection) {
		log.Debug().Bool("hovered", sel.Active).Str("chain", sel.Entity.Name).Msg("hover changed")
	})
	s.SetAssetsReadyCallback(func(ready, failed int) {
		log.Info().Int("ready", ready).Int("failed", failed).Msg("icons settled")
	})

	presentMode := renderer.PresentModeVSync
	if !cfg.Window.VSync {
		presentMode = renderer.PresentModeUncapped
	}
	msaa := renderer.MSAA4x
	if !cfg.Window.MSAA {
		msaa = renderer.MSAAOff
	}
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win, s.Atlas().Size(),
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(msaa),
		renderer.WithLogger(log),
	)
	if err != nil {
		s.Close()
		return err
	}

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithScene(s),
		engine.WithRenderer(r),
		engine.WithProfiling(cfg.Log.Profile),
		engine.WithRenderFrameLimit(cfg.Window.FrameLimit),
		engine.WithLogger(log),
	)
	return eng.Run()
}
