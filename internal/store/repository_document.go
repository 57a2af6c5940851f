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

// documentRepository is the PostgreSQL-backed implementation of
// [DocumentRepository]. Queries are built with squirrel so placeholders stay
// consistent with the pgx dialect.
type documentRepository struct {
	*DB
	logger *logger.Logger
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// NewDocumentRepository constructs a [DocumentRepository] backed by the
// provided database connection and logger.
func NewDocumentRepository(db *DB, logger *logger.Logger) DocumentRepository {
	return &documentRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *documentRepository) GetDocument(ctx context.Context, accountID string, kind models.DocumentKind) (models.Document, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Select("payload", "written_at", "device_id").
		From("documents").
		Where(sq.Eq{"account_id": accountID, "kind": string(kind)}).
		ToSql()
	if err != nil {
		return models.Document{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var payload string
	var writtenAt time.Time
	var deviceID string

	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&payload, &writtenAt, &deviceID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Document{}, ErrDocumentNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.GetDocument").
			Str("account_id", accountID).
			Str("kind", kind.String()).
			Msg("failed to read document")
		return models.Document{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return models.Document{
		Kind:      kind,
		Payload:   json.RawMessage(payload),
		WrittenAt: writtenAt.UTC(),
		DeviceID:  deviceID,
	}, nil
}

// SetDocument upserts under a transaction so the assigned timestamp is
// strictly greater than the previous one for this account+kind, keeping
// written_at monotonic per account even when the server clock stalls.
func (r *documentRepository) SetDocument(ctx context.Context, accountID string, kind models.DocumentKind, payload json.RawMessage, deviceID string) (time.Time, error) {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	selectQuery, selectArgs, err := psql.
		Select("written_at").
		From("documents").
		Where(sq.Eq{"account_id": accountID, "kind": string(kind)}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var previous time.Time
	err = tx.QueryRowContext(ctx, selectQuery, selectArgs...).Scan(&previous)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	writtenAt := monotonicAfter(previous)

	upsertQuery, upsertArgs, err := psql.
		Insert("documents").
		Columns("account_id", "kind", "payload", "written_at", "device_id").
		Values(accountID, string(kind), string(payload), writtenAt, deviceID).
		Suffix(`ON CONFLICT (account_id, kind) DO UPDATE SET
			payload = EXCLUDED.payload,
			written_at = EXCLUDED.written_at,
			device_id = EXCLUDED.device_id`).
		ToSql()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = tx.ExecContext(ctx, upsertQuery, upsertArgs...); err != nil {
		log.Err(err).
			Str("func", "documentRepository.SetDocument").
			Str("account_id", accountID).
			Str("kind", kind.String()).
			Msg("failed to upsert document")
		return time.Time{}, fmt.Errorf("%w: %w", ErrExecutingStatement, classifyPostgresError(err))
	}

	if err = tx.Commit(); err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return writtenAt, nil
}

func (r *documentRepository) DeleteDocuments(ctx context.Context, accountID string) error {
	query, args, err := psql.
		Delete("documents").
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

// monotonicAfter returns the current UTC time, nudged forward when the
// previous stored timestamp is not strictly in the past.
func monotonicAfter(previous time.Time) time.Time {
	now := time.Now().UTC()
	if !now.After(previous) {
		return previous.Add(time.Millisecond)
	}
	return now
}
