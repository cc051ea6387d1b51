package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/pinegen/internal/store"
)

type chatRequest struct {
	ChatID string `json:"chat_id,omitempty"`
	Prompt string `json:"prompt"`
}

type chatResponse struct {
	ChatID string `json:"chat_id,omitempty"`
	Title  string `json:"title,omitempty"`

	// Reply is the model's raw text. It is what the client renders when no
	// script could be extracted (Indicator is null then).
	Reply     string           `json:"reply"`
	Indicator *store.Indicator `json:"indicator"`
	MatchedID string           `json:"matched_template,omitempty"`
}

// postChat runs one generation turn. With a database configured, the turn is
// recorded in a chat (created on first message) and the result is saved.
func (s *Server) postChat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Prompt == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "prompt is required")
	}

	ctx := c.Request().Context()

	result, err := s.svc.Generate(ctx, req.Prompt)
	if err != nil {
		log.Error().Err(err).Msg("Generation request failed")
		return echo.NewHTTPError(http.StatusBadGateway, "generation failed")
	}

	resp := chatResponse{Reply: result.Raw}
	if result.Code != "" {
		resp.Indicator = &store.Indicator{
			Code:    result.Code,
			Preview: result.Preview,
			Config:  result.Config,
		}
	}
	if result.Match.BestMatch != nil {
		resp.MatchedID = result.Match.BestMatch.ID
	}

	if s.store == nil {
		return c.JSON(http.StatusOK, resp)
	}

	chat, isNew, err := s.resolveChat(c, req)
	if err != nil {
		return err
	}

	assistantTurn := result.Code
	if assistantTurn == "" {
		assistantTurn = result.Raw
	}

	if _, err := s.store.AppendMessage(ctx, chat.ID, "user", req.Prompt); err != nil {
		log.Error().Err(err).Msg("Failed to record user message")
	}
	if _, err := s.store.AppendMessage(ctx, chat.ID, "assistant", assistantTurn); err != nil {
		log.Error().Err(err).Msg("Failed to record assistant message")
	}

	if resp.Indicator != nil {
		resp.Indicator.ChatID = &chat.ID
		if err := s.store.SaveIndicator(ctx, resp.Indicator); err != nil {
			log.Error().Err(err).Msg("Failed to save indicator")
		}
	}

	if isNew {
		if title, err := s.svc.GenerateTitle(ctx, req.Prompt); err == nil {
			if err := s.store.RenameChat(ctx, chat.ID, title); err == nil {
				chat.Title = title
			}
		}
	}

	resp.ChatID = chat.ID.String()
	resp.Title = chat.Title
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) resolveChat(c echo.Context, req chatRequest) (*store.Chat, bool, error) {
	ctx := c.Request().Context()

	if req.ChatID == "" {
		chat, err := s.store.CreateChat(ctx, "")
		if err != nil {
			return nil, false, echo.NewHTTPError(http.StatusInternalServerError, "failed to create chat")
		}
		return chat, true, nil
	}

	id, err := uuid.Parse(req.ChatID)
	if err != nil {
		return nil, false, echo.NewHTTPError(http.StatusBadRequest, "invalid chat_id")
	}
	chat, err := s.store.GetChat(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, false, echo.NewHTTPError(http.StatusNotFound, "chat not found")
		}
		return nil, false, echo.NewHTTPError(http.StatusInternalServerError, "failed to load chat")
	}
	return chat, false, nil
}

func (s *Server) listChats(c echo.Context) error {
	if err := s.requireStore(c); err != nil {
		return err
	}

	chats, err := s.store.ListChats(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list chats")
	}
	return c.JSON(http.StatusOK, chats)
}

func (s *Server) getChat(c echo.Context) error {
	if err := s.requireStore(c); err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid chat id")
	}

	ctx := c.Request().Context()
	chat, err := s.store.GetChat(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "chat not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load chat")
	}
	msgs, err := s.store.GetMessages(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load messages")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"chat":     chat,
		"messages": msgs,
	})
}

func (s *Server) renameChat(c echo.Context) error {
	if err := s.requireStore(c); err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid chat id")
	}

	var body struct {
		Title string `json:"title"`
	}
	if err := c.Bind(&body); err != nil || body.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}

	if err := s.store.RenameChat(c.Request().Context(), id, body.Title); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "chat not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to rename chat")
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) deleteChat(c echo.Context) error {
	if err := s.requireStore(c); err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid chat id")
	}

	if err := s.store.DeleteChat(c.Request().Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "chat not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete chat")
	}
	return c.NoContent(http.StatusNoContent)
}
