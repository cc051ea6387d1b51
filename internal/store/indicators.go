package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pinegen/internal/pinescript"
)

// Indicator is one saved generation result.
type Indicator struct {
	ID        uuid.UUID                  `json:"id"`
	ChatID    *uuid.UUID                 `json:"chat_id,omitempty"`
	Name      string                     `json:"name"`
	Code      string                     `json:"code"`
	Preview   string                     `json:"preview,omitempty"`
	Config    pinescript.IndicatorConfig `json:"config"`
	CreatedAt time.Time                  `json:"created_at"`
}

// SaveIndicator persists a generated indicator. Config is stored as JSONB so
// the frontend can render inputs without reparsing the script.
func (s *Store) SaveIndicator(ctx context.Context, ind *Indicator) error {
	if ind.ID == uuid.Nil {
		ind.ID = uuid.New()
	}
	if ind.Name == "" {
		ind.Name = ind.Config.Title
	}
	if ind.Name == "" {
		ind.Name = "Untitled indicator"
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO indicators (id, chat_id, name, code, preview, config)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`,
		ind.ID, ind.ChatID, ind.Name, ind.Code, ind.Preview, ind.Config)
	if err := row.Scan(&ind.CreatedAt); err != nil {
		return fmt.Errorf("failed to save indicator: %w", err)
	}

	return nil
}

// ListIndicators returns saved indicators, newest first, without code bodies.
func (s *Store) ListIndicators(ctx context.Context) ([]Indicator, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, chat_id, name, config, created_at FROM indicators ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list indicators: %w", err)
	}
	defer rows.Close()

	inds := []Indicator{}
	for rows.Next() {
		var ind Indicator
		if err := rows.Scan(&ind.ID, &ind.ChatID, &ind.Name, &ind.Config, &ind.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan indicator: %w", err)
		}
		inds = append(inds, ind)
	}

	return inds, rows.Err()
}

// GetIndicator returns one saved indicator with its full code.
func (s *Store) GetIndicator(ctx context.Context, id uuid.UUID) (*Indicator, error) {
	ind := &Indicator{ID: id}
	row := s.pool.QueryRow(ctx,
		`SELECT chat_id, name, code, preview, config, created_at FROM indicators WHERE id = $1`,
		id)
	if err := row.Scan(&ind.ChatID, &ind.Name, &ind.Code, &ind.Preview, &ind.Config, &ind.CreatedAt); err != nil {
		return nil, scanError(fmt.Sprintf("failed to get indicator %s", id), err)
	}
	return ind, nil
}

// DeleteIndicator removes one saved indicator.
func (s *Store) DeleteIndicator(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM indicators WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete indicator: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
