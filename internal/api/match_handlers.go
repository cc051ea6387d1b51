package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pinegen/internal/ai"
	"github.com/pinegen/internal/config"
)

type matchRequest struct {
	Prompt string `json:"prompt"`
}

// postMatch exposes the reference matcher directly so the frontend can show
// which template a prompt would start from before committing to generation.
func (s *Server) postMatch(c echo.Context) error {
	var req matchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result := s.library.Match(req.Prompt)

	resp := map[string]interface{}{
		"score":      result.Score,
		"alternates": result.Alternates,
	}
	if result.BestMatch != nil {
		resp["best_match"] = result.BestMatch
	}
	return c.JSON(http.StatusOK, resp)
}

type validateKeyRequest struct {
	Provider string `json:"provider"`
	APIKey   string `json:"api_key"`
	Model    string `json:"model,omitempty"`
	BaseURL  string `json:"base_url,omitempty"`
}

// postValidateKey checks provider credentials with a minimal live request.
func (s *Server) postValidateKey(c echo.Context) error {
	var req validateKeyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Provider == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "provider is required")
	}

	aiCfg := config.AIConfig{
		APIKey:  req.APIKey,
		Model:   req.Model,
		BaseURL: req.BaseURL,
	}
	if base, ok := s.cfg.AI[req.Provider]; ok && aiCfg.Model == "" {
		aiCfg.Model = base.Model
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	valid, err := ai.ValidateAPIKey(ctx, req.Provider, aiCfg)
	resp := map[string]interface{}{"valid": valid}
	if err != nil {
		resp["detail"] = err.Error()
	}
	return c.JSON(http.StatusOK, resp)
}
