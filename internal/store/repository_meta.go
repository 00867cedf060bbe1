package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-recall-keeper/internal/logger"
	"github.com/MKhiriev/go-recall-keeper/models"
)

const metaTable = "item_meta"

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

type metaRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewMetaRepository returns a [MetaRepository] backed by db.
func NewMetaRepository(db *DB, log *logger.Logger) MetaRepository {
	if log == nil {
		log = logger.Nop()
	}
	return &metaRepository{db: db, logger: log}
}

func (r *metaRepository) SaveMeta(ctx context.Context, username string, meta map[string]models.Meta) error {
	if len(meta) == 0 {
		return nil
	}
	ids := make([]string, 0, len(meta))
	for id := range meta {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	insert := builder.Insert(metaTable).
		Columns("username", "item_id", "reps", "stability", "difficulty", "last_review")
	for _, id := range ids {
		m := meta[id]
		insert = insert.Values(username, id, m.Reps, m.Stability, m.Difficulty, m.LastReview.Unix())
	}
	insert = insert.Suffix(`ON CONFLICT (username, item_id) DO UPDATE SET
		reps        = excluded.reps,
		stability   = excluded.stability,
		difficulty  = excluded.difficulty,
		last_review = excluded.last_review`)

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).
			Str("func", "metaRepository.SaveMeta").
			Str("username", username).
			Int("items", len(ids)).
			Msg("failed to upsert item meta")
		return fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}

	return nil
}

func (r *metaRepository) LoadMeta(ctx context.Context, username string) (map[string]models.Meta, error) {
	query, args, err := builder.
		Select("item_id", "reps", "stability", "difficulty", "last_review").
		From(metaTable).
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).
			Str("func", "metaRepository.LoadMeta").
			Str("username", username).
			Msg("failed to query item meta")
		return nil, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}
	defer rows.Close()

	out := make(map[string]models.Meta)
	for rows.Next() {
		var (
			id         string
			m          models.Meta
			lastReview int64
		)
		if err = rows.Scan(&id, &m.Reps, &m.Stability, &m.Difficulty, &lastReview); err != nil {
			r.logger.Err(err).
				Str("func", "metaRepository.LoadMeta").
				Str("username", username).
				Msg("failed to scan item meta row")
			return nil, fmt.Errorf("%w: %v", ErrScanningRows, err)
		}
		m.LastReview = time.Unix(lastReview, 0)
		out[id] = m
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScanningRows, err)
	}

	return out, nil
}

func (r *metaRepository) DeleteMeta(ctx context.Context, username, itemID string) error {
	query, args, err := builder.
		Delete(metaTable).
		Where(sq.And{sq.Eq{"username": username}, sq.Eq{"item_id": itemID}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).
			Str("func", "metaRepository.DeleteMeta").
			Str("item_id", itemID).
			Msg("failed to delete item meta")
		return fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}
	return nil
}
