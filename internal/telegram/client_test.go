package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkMessageShortPassthrough(t *testing.T) {
	chunks := chunkMessage("hello", 10)
	assert.Equal(t, []string{"hello"}, chunks)
}

func TestChunkMessageEmpty(t *testing.T) {
	assert.Nil(t, chunkMessage("", 10))
}

func TestChunkMessageBreaksAtNewlines(t *testing.T) {
	text := "line one\nline two\nline three"
	chunks := chunkMessage(text, 12)

	require.Len(t, chunks, 3)
	assert.Equal(t, "line one", chunks[0])
	assert.Equal(t, "line two", chunks[1])
	assert.Equal(t, "line three", chunks[2])
}

func TestChunkMessageHardSplitWithoutNewlines(t *testing.T) {
	text := strings.Repeat("x", 25)
	chunks := chunkMessage(text, 10)

	require.Len(t, chunks, 3)
	assert.Equal(t, 10, len(chunks[0]))
	assert.Equal(t, 10, len(chunks[1]))
	assert.Equal(t, 5, len(chunks[2]))
	assert.Equal(t, text, strings.Join(chunks, ""))
}

func TestChunkMessageNeverSplitsRunes(t *testing.T) {
	// 3-byte runes, limit not a multiple of 3, no newlines anywhere.
	text := strings.Repeat("中", 20)
	chunks := chunkMessage(text, 10)

	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.True(t, utf8.ValidString(c), "chunk %q is not valid UTF-8", c)
		assert.LessOrEqual(t, len(c), 10)
	}
	assert.Equal(t, text, strings.Join(chunks, ""))
}

func TestChunkMessageEveryPieceWithinLimit(t *testing.T) {
	text := strings.Repeat("some code line\n", 800)
	chunks := chunkMessage(text, MaxMessageLen)

	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), MaxMessageLen)
		assert.NotEmpty(t, c)
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-token")
	c.baseURL = srv.URL
	return c, srv
}

func TestSendMessageSplitsLongText(t *testing.T) {
	var sent []string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/bottest-token/sendMessage", r.URL.Path)

		var payload struct {
			ChatID int64  `json:"chat_id"`
			Text   string `json:"text"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, int64(42), payload.ChatID)
		sent = append(sent, payload.Text)

		w.Write([]byte(`{"ok": true, "result": {}}`))
	})

	long := strings.Repeat("plot(close)\n", 500)
	require.Greater(t, len(long), MaxMessageLen)

	err := c.SendMessage(context.Background(), 42, long)
	require.NoError(t, err)
	assert.Greater(t, len(sent), 1)
}

func TestSendMessageSurfacesAPIError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok": false, "description": "Bad Request: chat not found"}`))
	})

	err := c.SendMessage(context.Background(), 1, "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestGetUpdatesParsesMessages(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/bottest-token/getUpdates", r.URL.Path)
		w.Write([]byte(`{"ok": true, "result": [
			{"update_id": 7, "message": {"message_id": 1, "text": "rsi please", "chat": {"id": 99}, "from": {"id": 5, "username": "trader"}}}
		]}`))
	})

	updates, err := c.GetUpdates(context.Background(), 0, 1)
	require.NoError(t, err)
	require.Len(t, updates, 1)

	assert.Equal(t, int64(7), updates[0].UpdateID)
	assert.Equal(t, "rsi please", updates[0].Message.Text)
	assert.Equal(t, int64(99), updates[0].Message.Chat.ID)
	assert.Equal(t, "trader", updates[0].Message.From.Username)
}
