package cmd

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/viper"

	"github.com/inkwell-tui/inkwell/pkg/config"
	"github.com/inkwell-tui/inkwell/pkg/formatter"
	"github.com/inkwell-tui/inkwell/pkg/logger"
	"github.com/inkwell-tui/inkwell/pkg/playback"
	"github.com/inkwell-tui/inkwell/pkg/resources"
	"github.com/inkwell-tui/inkwell/pkg/tui"
)

// AppConfig contains everything needed to run the application
type AppConfig struct {
	Config   config.Config
	Document string
	Title    string
}

// RunApplication parses the document, builds the playback engine, and runs
// the surface until the user quits
func RunApplication(appCfg *AppConfig) error {
	log := logger.WithComponent("app")
	log.Info("Application starting", "document", appCfg.Title)

	registry := resources.NewRegistry()
	if secs := appCfg.Config.Resources.HealthCheckSeconds; secs > 0 {
		interval := time.Duration(secs) * time.Second
		registry.StartSweeper(interval, 2*interval)
		defer registry.StopSweeper()
	}

	engine := playback.NewEngine(playback.OptionsFromConfig(appCfg.Config.Playback, registry))

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}

	surface := tui.NewSurface(screen, engine, tui.SurfaceOptions{
		Mouse:       appCfg.Config.Mouse && !viper.GetBool("no_mouse"),
		CursorGlyph: appCfg.Config.Playback.CursorGlyph,
		Resources:   registry,
	})

	tree := formatter.New().Parse(appCfg.Document)
	view := surface.NewMessageView()
	engine.Start(tree, view)

	err = surface.Run()

	registry.ReleaseAll()
	log.Info("Application exiting")
	return err
}
