package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/pinegen/cmd"
	"github.com/pinegen/internal/logging"
)

const (
	version = "0.1.0"
)

func main() {
	logging.Setup(os.Getenv("PINEGEN_LOG_LEVEL"))

	app := &cli.App{
		Name:    "pinegen",
		Usage:   "AI assistant backend that turns trading ideas into PineScript indicators",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Load configuration from `FILE`",
				Value:   "pinegen.toml",
			},
		},
		Commands: []*cli.Command{
			cmd.APICommand(),
			cmd.GenerateCommand(),
			cmd.TelegramCommand(),
			cmd.ConfigCommand(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
