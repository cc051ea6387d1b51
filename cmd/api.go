package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/pinegen/internal/api"
)

// APICommand returns the CLI command for starting the API server
func APICommand() *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Start the PineGen API server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port for the API server",
			},
			&cli.StringFlag{
				Name:  "ai",
				Usage: "AI provider to use instead of the configured default",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if c.IsSet("port") {
				cfg.Server.Port = c.Int("port")
			}

			svc, err := buildService(c, cfg)
			if err != nil {
				return err
			}

			st, err := openStore(context.Background(), cfg)
			if err != nil {
				return err
			}
			if st != nil {
				defer st.Close()
			}

			fmt.Printf("Starting PineGen API server on port %d...\n", cfg.Server.Port)

			server := api.NewServer(cfg, svc, st)
			return server.Start()
		},
	}
}
