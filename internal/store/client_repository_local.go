package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/altech-app/cloudsync/internal/logger"
	"github.com/altech-app/cloudsync/models"
)

// localStore is the sqlite-backed implementation of [LocalStore].
type localStore struct {
	*DB
	logger *logger.Logger
}

// NewLocalStore constructs a [LocalStore] backed by the provided sqlite
// connection and logger.
func NewLocalStore(db *DB, logger *logger.Logger) LocalStore {
	return &localStore{
		DB:     db,
		logger: logger,
	}
}

func (s *localStore) GetDocument(ctx context.Context, kind models.DocumentKind) (json.RawMessage, error) {
	var payload string
	err := s.DB.QueryRowContext(ctx, getLocalDocument, string(kind)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		s.logger.Err(err).
			Str("func", "localStore.GetDocument").
			Str("kind", kind.String()).
			Msg("failed to read local document")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return json.RawMessage(payload), nil
}

func (s *localStore) SetDocument(ctx context.Context, kind models.DocumentKind, payload json.RawMessage) error {
	_, err := s.DB.ExecContext(ctx, setLocalDocument, string(kind), string(payload), time.Now().UnixMilli())
	if err != nil {
		s.logger.Err(err).
			Str("func", "localStore.SetDocument").
			Str("kind", kind.String()).
			Msg("failed to write local document")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *localStore) GetQuotes(ctx context.Context) ([]models.Quote, error) {
	rows, err := s.DB.QueryContext(ctx, getLocalQuotes)
	if err != nil {
		s.logger.Err(err).
			Str("func", "localStore.GetQuotes").
			Msg("failed to read local quotes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	quotes := make([]models.Quote, 0, 16)
	for rows.Next() {
		var q models.Quote
		var data string
		var updatedAt int64
		var conflict int

		if scanErr := rows.Scan(&q.ID, &q.Name, &data, &updatedAt, &q.DeviceID, &conflict, &q.OriginalID); scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		q.Data = json.RawMessage(data)
		q.UpdatedAt = millisToTime(updatedAt)
		q.Conflict = conflict != 0
		quotes = append(quotes, q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return quotes, nil
}

func (s *localStore) ReplaceQuotes(ctx context.Context, quotes []models.Quote) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Err(err).
			Str("func", "localStore.ReplaceQuotes").
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, deleteAllLocalQuotes); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	for _, q := range quotes {
		conflict := 0
		if q.Conflict {
			conflict = 1
		}
		_, err = tx.ExecContext(ctx, insertLocalQuote,
			q.ID, q.Name, string(q.Data), q.UpdatedAt.UnixMilli(), q.DeviceID, conflict, q.OriginalID)
		if err != nil {
			s.logger.Err(err).
				Str("func", "localStore.ReplaceQuotes").
				Str("quote_id", q.ID).
				Msg("failed to insert quote")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (s *localStore) GetWatermark(ctx context.Context, key string) (time.Time, error) {
	var lastSync int64
	err := s.DB.QueryRowContext(ctx, getWatermark, key).Scan(&lastSync)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return millisToTime(lastSync), nil
}

func (s *localStore) SetWatermark(ctx context.Context, key string, t time.Time) error {
	if _, err := s.DB.ExecContext(ctx, setWatermark, key, t.UnixMilli()); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *localStore) ClearWatermarks(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, clearWatermarks); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *localStore) GetMeta(ctx context.Context, key string) (string, error) {
	var value string
	err := s.DB.QueryRowContext(ctx, getMetaValue, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return value, nil
}

func (s *localStore) SetMeta(ctx context.Context, key, value string) error {
	if _, err := s.DB.ExecContext(ctx, setMetaValue, key, value); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// millisToTime converts a unix-millisecond column to time.Time, mapping the
// zero column value to the zero time so "never synced" round-trips.
func millisToTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
