package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinegen/internal/config"
	"github.com/pinegen/internal/generation"
)

type stubProvider struct {
	reply string
}

func (p *stubProvider) Generate(ctx context.Context, system, user string) (string, error) {
	return p.reply, nil
}

func (p *stubProvider) Name() string { return "stub" }

func newTestServer(reply string) *Server {
	cfg := &config.Config{}
	cfg.Server.Port = 0
	svc := generation.NewService(&stubProvider{reply: reply}, nil)
	return NewServer(cfg, svc, nil)
}

func doJSON(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer("")
	rec := doJSON(s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestMatchEndpoint(t *testing.T) {
	s := newTestServer("")
	rec := doJSON(s, http.MethodPost, "/api/v1/match", `{"prompt": "rsi divergence overbought oversold"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Score     float64 `json:"score"`
		BestMatch struct {
			ID string `json:"id"`
		} `json:"best_match"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "rsi-divergence", resp.BestMatch.ID)
	assert.Greater(t, resp.Score, 0.0)
}

func TestMatchEndpointNoMatch(t *testing.T) {
	s := newTestServer("")
	rec := doJSON(s, http.MethodPost, "/api/v1/match", `{"prompt": "zzz qqq"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "best_match")
}

func TestChatEndpointWithoutStore(t *testing.T) {
	s := newTestServer("```pine\n//@version=5\nindicator(\"Test\")\nplot(close)\n```")
	rec := doJSON(s, http.MethodPost, "/api/v1/chat", `{"prompt": "plot the close"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ChatID    string `json:"chat_id"`
		Indicator struct {
			Code string `json:"code"`
		} `json:"indicator"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.ChatID)
	assert.Contains(t, resp.Indicator.Code, "//@version=5")
	assert.Contains(t, resp.Indicator.Code, "plot(close)")
}

func TestChatEndpointProseReplyHasNoIndicator(t *testing.T) {
	prose := "I can only describe the idea, not implement it."
	s := newTestServer(prose)
	rec := doJSON(s, http.MethodPost, "/api/v1/chat", `{"prompt": "do my taxes"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Reply     string           `json:"reply"`
		Indicator *json.RawMessage `json:"indicator"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, prose, resp.Reply)
	assert.Nil(t, resp.Indicator)
}

func TestChatEndpointRejectsEmptyPrompt(t *testing.T) {
	s := newTestServer("")
	rec := doJSON(s, http.MethodPost, "/api/v1/chat", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatListRequiresStore(t *testing.T) {
	s := newTestServer("")
	rec := doJSON(s, http.MethodGet, "/api/v1/chats", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
