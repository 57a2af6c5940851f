package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/altech-app/cloudsync/internal/logger"
	"github.com/altech-app/cloudsync/models"
)

// quoteRepository is the PostgreSQL-backed implementation of
// [QuoteRepository].
type quoteRepository struct {
	*DB
	logger *logger.Logger
}

// NewQuoteRepository constructs a [QuoteRepository] backed by the provided
// database connection and logger.
func NewQuoteRepository(db *DB, logger *logger.Logger) QuoteRepository {
	return &quoteRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *quoteRepository) ListQuotes(ctx context.Context, accountID string) ([]models.Quote, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Select("id", "name", "data", "updated_at", "device_id", "conflict", "original_id").
		From("quotes").
		Where(sq.Eq{"account_id": accountID}).
		OrderBy("updated_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "quoteRepository.ListQuotes").
			Str("account_id", accountID).
			Msg("failed to list quotes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	quotes := make([]models.Quote, 0, 16)
	for rows.Next() {
		var q models.Quote
		var data string
		var updatedAt time.Time

		if scanErr := rows.Scan(&q.ID, &q.Name, &data, &updatedAt, &q.DeviceID, &q.Conflict, &q.OriginalID); scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		q.Data = json.RawMessage(data)
		q.UpdatedAt = updatedAt.UTC()
		quotes = append(quotes, q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return quotes, nil
}

// UpsertQuotes writes the whole batch in one transaction. Every quote in the
// batch receives the same server-assigned timestamp, strictly after the
// newest stored quote of the account.
func (r *quoteRepository) UpsertQuotes(ctx context.Context, accountID string, quotes []models.Quote, deviceID string) (time.Time, error) {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	maxQuery, maxArgs, err := psql.
		Select("COALESCE(MAX(updated_at), 'epoch'::timestamptz)").
		From("quotes").
		Where(sq.Eq{"account_id": accountID}).
		ToSql()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var newest time.Time
	err = tx.QueryRowContext(ctx, maxQuery, maxArgs...).Scan(&newest)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	writtenAt := monotonicAfter(newest)

	for _, q := range quotes {
		query, args, buildErr := psql.
			Insert("quotes").
			Columns("account_id", "id", "name", "data", "updated_at", "device_id", "conflict", "original_id").
			Values(accountID, q.ID, q.Name, string(q.Data), writtenAt, deviceID, q.Conflict, q.OriginalID).
			Suffix(`ON CONFLICT (account_id, id) DO UPDATE SET
				name = EXCLUDED.name,
				data = EXCLUDED.data,
				updated_at = EXCLUDED.updated_at,
				device_id = EXCLUDED.device_id,
				conflict = EXCLUDED.conflict,
				original_id = EXCLUDED.original_id`).
			ToSql()
		if buildErr != nil {
			return time.Time{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}

		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).
				Str("func", "quoteRepository.UpsertQuotes").
				Str("account_id", accountID).
				Str("quote_id", q.ID).
				Msg("failed to upsert quote")
			return time.Time{}, fmt.Errorf("%w: %w", ErrExecutingStatement, classifyPostgresError(err))
		}
	}

	if err = tx.Commit(); err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return writtenAt, nil
}

func (r *quoteRepository) DeleteQuotes(ctx context.Context, accountID string) error {
	query, args, err := psql.
		Delete("quotes").
		Where(sq.Eq{"account_id": accountID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
