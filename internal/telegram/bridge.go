package telegram

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Handler processes one inbound prompt. Implementations either enqueue a
// background job or run generation inline; either way the reply is delivered
// through the client.
type Handler func(ctx context.Context, chatID int64, prompt string) error

const welcomeText = "Hi! Describe the indicator you want and I'll write the PineScript for you.\n\nExample: \"RSI divergence with overbought and oversold zones\""

// Bridge runs the long-polling loop and dispatches prompts to a handler.
type Bridge struct {
	client      *Client
	handler     Handler
	pollTimeout int
}

// NewBridge wires a client to a prompt handler. pollTimeout is the getUpdates
// long-poll window in seconds.
func NewBridge(client *Client, handler Handler, pollTimeout int) *Bridge {
	if pollTimeout <= 0 {
		pollTimeout = 30
	}
	return &Bridge{
		client:      client,
		handler:     handler,
		pollTimeout: pollTimeout,
	}
}

// Run polls for updates until the context is cancelled. Poll failures are
// logged and retried after a short pause rather than killing the loop.
func (b *Bridge) Run(ctx context.Context) error {
	log.Info().Int("poll_timeout", b.pollTimeout).Msg("Telegram bridge started")

	var offset int64
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		updates, err := b.client.GetUpdates(ctx, offset, b.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Warn().Err(err).Msg("getUpdates failed, retrying")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(5 * time.Second):
			}
			continue
		}

		for _, u := range updates {
			if u.UpdateID >= offset {
				offset = u.UpdateID + 1
			}
			b.dispatch(ctx, u)
		}
	}
}

func (b *Bridge) dispatch(ctx context.Context, u Update) {
	if u.Message == nil || strings.TrimSpace(u.Message.Text) == "" {
		return
	}

	chatID := u.Message.Chat.ID
	text := strings.TrimSpace(u.Message.Text)

	if strings.HasPrefix(text, "/") {
		b.handleCommand(ctx, chatID, text)
		return
	}

	log.Info().
		Int64("chat_id", chatID).
		Str("username", u.Message.From.Username).
		Msg("Received generation prompt")

	if err := b.handler(ctx, chatID, text); err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("Prompt handling failed")
		if err := b.client.SendMessage(ctx, chatID, "Something went wrong generating your script. Please try again."); err != nil {
			log.Error().Err(err).Msg("Failed to send error reply")
		}
	}
}

func (b *Bridge) handleCommand(ctx context.Context, chatID int64, text string) {
	cmd := strings.Fields(text)[0]

	var reply string
	switch cmd {
	case "/start", "/help":
		reply = welcomeText
	default:
		reply = "Unknown command. Just send a plain description of the indicator you want."
	}

	if err := b.client.SendMessage(ctx, chatID, reply); err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send command reply")
	}
}
