package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"eventura/internal/domain"

	"github.com/lib/pq"
)

// pgForeignKeyViolation is the SQLSTATE raised when a referenced row is missing.
const pgForeignKeyViolation = "23503"

// relationRepository implements the toggle ledger over a (event_id, user_id)
// table with a unique constraint on the pair.
type relationRepository struct {
	DB          *sql.DB
	table       string
	insertQuery string
}

// NewInterestRepository returns a domain.InterestRepository backed by event_interests.
func NewInterestRepository(db *sql.DB) domain.InterestRepository {
	return &relationRepository{
		DB:    db,
		table: "event_interests",
		insertQuery: `
			INSERT INTO event_interests (event_id, user_id, notifications_enabled, created_at)
			VALUES ($1, $2, TRUE, $3)
			ON CONFLICT (event_id, user_id) DO NOTHING
		`,
	}
}

// NewLikeRepository returns a domain.LikeRepository backed by event_likes.
func NewLikeRepository(db *sql.DB) domain.LikeRepository {
	return &relationRepository{
		DB:    db,
		table: "event_likes",
		insertQuery: `
			INSERT INTO event_likes (event_id, user_id, created_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (event_id, user_id) DO NOTHING
		`,
	}
}

// Toggle runs delete-if-present, insert-if-absent and the recount in one
// transaction. A concurrent toggle that loses the insert race to the unique
// constraint inserts nothing and reports the row as present.
func (r *relationRepository) Toggle(ctx context.Context, eventID, userID int64, now time.Time) (res *domain.ToggleResult, err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	result, err := tx.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE event_id = $1 AND user_id = $2`, r.table), eventID, userID)
	if err != nil {
		return nil, err
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}

	active := deleted == 0
	if active {
		if _, err = tx.ExecContext(ctx, r.insertQuery, eventID, userID, now); err != nil {
			if isForeignKeyViolation(err) {
				err = domain.ErrNotFound
			}
			return nil, err
		}
	}

	var total int
	if err = tx.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE event_id = $1`, r.table), eventID).Scan(&total); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return &domain.ToggleResult{Total: total, Active: active}, nil
}

func (r *relationRepository) Exists(ctx context.Context, eventID, userID int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE event_id = $1 AND user_id = $2)`, r.table),
		eventID, userID).Scan(&exists)
	return exists, err
}

func (r *relationRepository) CountByEvent(ctx context.Context, eventID int64) (int, error) {
	var total int
	err := r.DB.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE event_id = $1`, r.table), eventID).Scan(&total)
	return total, err
}

func (r *relationRepository) ListEventIDsByUser(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.DB.QueryContext(ctx,
		fmt.Sprintf(`SELECT event_id FROM %s WHERE user_id = $1 ORDER BY id`, r.table), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func isForeignKeyViolation(err error) bool {
	var perr *pq.Error
	return errors.As(err, &perr) && perr.Code == pgForeignKeyViolation
}
