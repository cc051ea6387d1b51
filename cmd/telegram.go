package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/pinegen/internal/jobqueue"
	"github.com/pinegen/internal/telegram"
)

// TelegramCommand returns the CLI command for running the Telegram bridge.
// With a database configured, prompts are queued as River jobs; without one,
// generation runs inline in the polling process.
func TelegramCommand() *cli.Command {
	return &cli.Command{
		Name:  "telegram",
		Usage: "Run the Telegram bot bridge",
		Flags: []cli.Flag{
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
			if cfg.Telegram.BotToken == "" {
				return fmt.Errorf("telegram bot_token is not configured")
			}

			svc, err := buildService(c, cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			client := telegram.NewClient(cfg.Telegram.BotToken)

			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}

			var handler telegram.Handler
			if st != nil {
				defer st.Close()

				queue, err := jobqueue.NewJobQueue(st.Pool(), svc, st, client)
				if err != nil {
					return err
				}
				if err := queue.Start(ctx); err != nil {
					return fmt.Errorf("failed to start job queue: %w", err)
				}
				defer func() {
					if err := queue.Stop(context.Background()); err != nil {
						log.Error().Err(err).Msg("Job queue shutdown failed")
					}
				}()

				handler = queue.EnqueueGenerate
			} else {
				handler = func(ctx context.Context, chatID int64, prompt string) error {
					result, err := svc.Generate(ctx, prompt)
					if err != nil {
						return err
					}
					reply := result.Code
					if reply == "" {
						reply = result.Raw
					}
					return client.SendMessage(ctx, chatID, reply)
				}
			}

			bridge := telegram.NewBridge(client, handler, cfg.Telegram.PollTimeout)
			if err := bridge.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}

			log.Info().Msg("Telegram bridge stopped")
			return nil
		},
	}
}
