package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"

	"github.com/KrX3D/TizenTube2/internal/infrastructure/env"
	"github.com/KrX3D/TizenTube2/internal/infrastructure/logger"
)

// globalFlags are shared by every command.
type globalFlags struct {
	logLevel string
	logDir   string
	settings string
}

func (g *globalFlags) loggerConfig() logger.Config {
	cfg := logger.DefaultConfig()
	cfg.Level = g.logLevel
	cfg.Dir = g.logDir
	return cfg
}

func newApp(envService *env.EnvService) (*kingpin.Application, *globalFlags) {
	app := kingpin.New("tvfilter", "Filters short-form, watched and ad content out of TV app responses.")
	app.HelpFlag.Short('h')

	g := &globalFlags{}
	app.Flag("log-level", "Log level (debug, info, warn, error).").
		Default(envService.GetDefault(env.KeyLogLevel, "info")).StringVar(&g.logLevel)
	app.Flag("log-dir", "Directory for JSON log files; empty logs to stderr.").
		Default(envService.Get(env.KeyLogDir)).StringVar(&g.logDir)
	app.Flag("settings", "YAML settings file.").
		Default(envService.Get(env.KeySettings)).StringVar(&g.settings)

	addFilterCommand(app, g)
	addBrowseCommand(app, g, envService)
	return app, g
}

func main() {
	envService := env.NewEnvService(".")
	app, _ := newApp(envService)
	kingpin.MustParse(app.Parse(os.Args[1:]))
}

func exitWithErr(err error) {
	fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
	os.Exit(1)
}
