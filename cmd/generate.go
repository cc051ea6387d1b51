package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
)

// GenerateCommand returns the CLI command for one-shot generation from the
// terminal, useful for trying prompts without running the server.
func GenerateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "Generate a PineScript indicator from a prompt",
		ArgsUsage: "PROMPT",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "ai",
				Usage: "AI provider to use instead of the configured default",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the script to `FILE` instead of stdout",
			},
			&cli.BoolFlag{
				Name:  "preview",
				Usage: "Also print the JavaScript preview snippet when present",
			},
		},
		Action: func(c *cli.Context) error {
			prompt := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if prompt == "" {
				return fmt.Errorf("a prompt is required, e.g.: pinegen generate \"rsi divergence\"")
			}

			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			svc, err := buildService(c, cfg)
			if err != nil {
				return err
			}

			result, err := svc.Generate(context.Background(), prompt)
			if err != nil {
				return err
			}

			if result.Match.BestMatch != nil {
				fmt.Fprintf(os.Stderr, "Matched template: %s (score %.2f)\n", result.Match.BestMatch.Name, result.Match.Score)
			}

			if out := c.String("output"); out != "" {
				if err := os.WriteFile(out, []byte(result.Code), 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", out, err)
				}
				fmt.Printf("Wrote %s\n", out)
			} else {
				fmt.Print(result.Code)
			}

			if c.Bool("preview") && result.Preview != "" {
				fmt.Print("\n// Preview\n", result.Preview)
			}

			return nil
		},
	}
}
