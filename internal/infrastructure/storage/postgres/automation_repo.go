package postgres

import (
	"context"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"freightops/internal/core/apperror"
	"freightops/internal/domain/automation"
)

// compressThreshold is the payload size above which request and response
// bodies are stored zstd-compressed.
const compressThreshold = 10 * 1024

// CompressionAlgo marks how a log payload column is stored.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// AutomationLogRepo is the PostgreSQL implementation of
// automation.LogRepository. Oversized payloads are compressed before insert,
// small ones stay readable in plain JSON columns.
type AutomationLogRepo struct {
	tm      *TxManager
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func NewAutomationLogRepo(tm *TxManager) (*AutomationLogRepo, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &AutomationLogRepo{tm: tm, encoder: encoder, decoder: decoder}, nil
}

var _ automation.LogRepository = (*AutomationLogRepo)(nil)

func (r *AutomationLogRepo) Append(ctx context.Context, entry *automation.LogEntry) error {
	reqBody, reqAlgo := r.compress(entry.RequestBody)
	respBody, respAlgo := r.compress(entry.ResponseBody)

	sql, args, err := builder().
		Insert("automation_logs").
		Columns(
			"id", "source", "action", "lot_number",
			"request_body", "request_compression",
			"response_body", "response_compression",
			"success", "error_message", "created_at",
		).
		Values(
			entry.ID, entry.Source, entry.Action, entry.LotNumber,
			reqBody, reqAlgo,
			respBody, respAlgo,
			entry.Success, entry.ErrorMessage, entry.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build automation log insert: %w", err)
	}

	if _, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(err)
	}
	return nil
}

func (r *AutomationLogRepo) compress(payload []byte) ([]byte, CompressionAlgo) {
	if len(payload) <= compressThreshold {
		return payload, CompressionNone
	}
	return r.encoder.EncodeAll(payload, nil), CompressionZstd
}

// Decompress restores a payload column read back from the log table.
func (r *AutomationLogRepo) Decompress(payload []byte, algo CompressionAlgo) ([]byte, error) {
	if algo != CompressionZstd {
		return payload, nil
	}
	out, err := r.decoder.DecodeAll(payload, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress log payload: %w", err)
	}
	return out, nil
}
