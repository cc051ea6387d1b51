package store

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestScanErrorMapsMissingRows(t *testing.T) {
	err := scanError("failed to get chat 123", pgx.ErrNoRows)

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "failed to get chat 123")
}

func TestScanErrorKeepsDriverErrors(t *testing.T) {
	cause := errors.New("connection refused")
	err := scanError("failed to get indicator 456", cause)

	assert.False(t, errors.Is(err, ErrNotFound), "an outage must not look like a missing row")
	assert.True(t, errors.Is(err, cause))
}
