package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"freightops/internal/core/apperror"
	"freightops/internal/domain/notify"
)

var recipientColumns = []string{
	"id", "user_id", "role", "channel", "address",
	"quiet_start", "quiet_end", "filter_expr", "active",
}

// RecipientRepo is the PostgreSQL implementation of notify.RecipientRepository.
type RecipientRepo struct {
	tm *TxManager
}

func NewRecipientRepo(tm *TxManager) *RecipientRepo {
	return &RecipientRepo{tm: tm}
}

var _ notify.RecipientRepository = (*RecipientRepo)(nil)

func (r *RecipientRepo) ActiveByUser(ctx context.Context, userID string) ([]*notify.Recipient, error) {
	sql, args, err := builder().
		Select(recipientColumns...).
		From("notification_recipients").
		Where("user_id = ?", userID).
		Where("active = TRUE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recipient query: %w", err)
	}

	var out []*notify.Recipient
	if err := pgxscan.Select(ctx, r.tm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return out, nil
}

func (r *RecipientRepo) AllActive(ctx context.Context) ([]*notify.Recipient, error) {
	sql, args, err := builder().
		Select(recipientColumns...).
		From("notification_recipients").
		Where("active = TRUE").
		OrderBy("user_id, channel").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recipient query: %w", err)
	}

	var out []*notify.Recipient
	if err := pgxscan.Select(ctx, r.tm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return out, nil
}

// NotificationLogRepo is the PostgreSQL implementation of notify.LogRepository.
type NotificationLogRepo struct {
	tm *TxManager
}

func NewNotificationLogRepo(tm *TxManager) *NotificationLogRepo {
	return &NotificationLogRepo{tm: tm}
}

var _ notify.LogRepository = (*NotificationLogRepo)(nil)

func (r *NotificationLogRepo) Append(ctx context.Context, l *notify.Log) error {
	sql, args, err := builder().
		Insert("notification_logs").
		Columns("id", "recipient_id", "event_type", "channel", "status", "error", "created_at").
		Values(l.ID, l.RecipientID, l.EventType, l.Channel, l.Status, l.Error, l.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build notification log insert: %w", err)
	}

	if _, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(err)
	}
	return nil
}
