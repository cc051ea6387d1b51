package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/pinegen/internal/store"
)

func (s *Server) listIndicators(c echo.Context) error {
	if err := s.requireStore(c); err != nil {
		return err
	}

	inds, err := s.store.ListIndicators(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list indicators")
	}
	return c.JSON(http.StatusOK, inds)
}

func (s *Server) getIndicator(c echo.Context) error {
	if err := s.requireStore(c); err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid indicator id")
	}

	ind, err := s.store.GetIndicator(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "indicator not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load indicator")
	}
	return c.JSON(http.StatusOK, ind)
}

func (s *Server) deleteIndicator(c echo.Context) error {
	if err := s.requireStore(c); err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid indicator id")
	}

	if err := s.store.DeleteIndicator(c.Request().Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "indicator not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete indicator")
	}
	return c.NoContent(http.StatusNoContent)
}
