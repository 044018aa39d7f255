package postgres

import (
	"bytes"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressRoundTrip(t *testing.T) {
	repo, err := NewAutomationLogRepo(nil)
	require.NoError(t, err)

	small := []byte(`{"lot_number":"LOT-2024-001"}`)
	stored, algo := repo.compress(small)
	assert.Equal(t, CompressionNone, algo)
	assert.Equal(t, small, stored)

	large := bytes.Repeat([]byte(`{"k":"0123456789abcdef"}`), 1024)
	stored, algo = repo.compress(large)
	assert.Equal(t, CompressionZstd, algo)
	assert.Less(t, len(stored), len(large))

	restored, err := repo.Decompress(stored, algo)
	require.NoError(t, err)
	assert.Equal(t, large, restored)
}

func TestDecompressPassesPlainPayloads(t *testing.T) {
	repo, err := NewAutomationLogRepo(nil)
	require.NoError(t, err)

	payload := []byte(`{"success":true}`)
	out, err := repo.Decompress(payload, CompressionNone)
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("connection reset")))
	assert.False(t, isUniqueViolation(nil))
}
