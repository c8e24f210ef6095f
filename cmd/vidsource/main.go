package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/kmmndr/movement_detector/internal/config"
	"github.com/kmmndr/movement_detector/internal/logger"
)

type env struct {
	cfg config.Config
	log logger.Logger
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	e := &env{cfg: config.Defaults(), log: logger.NewNoop()}

	return &cli.App{
		Name:  "vidsource",
		Usage: "inspect video files feeding the movement detector",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration file",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "debug, info, warn, error or quiet (overrides the config file)",
			},
		},
		Before: func(c *cli.Context) error {
			return e.setup(c)
		},
		Commands: []*cli.Command{
			infoCommand(e),
			frameCommand(e),
			sumCommand(e),
			statsCommand(e),
			scanCommand(e),
		},
	}
}

func (e *env) setup(c *cli.Context) error {
	if path := c.String("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		e.cfg = cfg
	}
	if level := c.String("log-level"); level != "" {
		e.cfg.LogLevel = level
		if err := e.cfg.Validate(); err != nil {
			return err
		}
	}

	e.log = logger.NewConsole(e.cfg.Level())
	if path := c.String("config"); path != "" {
		e.log.Debug("Loaded configuration from %s", path)
	}

	return nil
}
