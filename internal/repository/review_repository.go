package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/venuebook/hall-booking/internal/model"
)

// ReviewRepo manages hall reviews.  The one-review-per-(customer, hall)
// rule is enforced twice: by an EXISTS pre-check for a clean error and
// by the unique key on (hall_id, customer_id) as the last line of
// defense against concurrent inserts.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo constructs a ReviewRepo with the given DB handle.
func NewReviewRepo(db *sql.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

// Create inserts a review.  Callers must have verified the completed-
// booking gate beforehand; this method only guards uniqueness.
func (r *ReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	const existsQ = `SELECT EXISTS(SELECT 1 FROM reviews WHERE hall_id = ? AND customer_id = ?)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, existsQ, rv.HallID, rv.CustomerID).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrDuplicateReview
	}
	const q = `INSERT INTO reviews (hall_id, customer_id, rating, comment) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rv.HallID, rv.CustomerID, rv.Rating, rv.Comment)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrDuplicateReview
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = uint64(id)
	return nil
}

// ListByHall returns a hall's reviews, newest first.
func (r *ReviewRepo) ListByHall(ctx context.Context, hallID uint64) ([]model.Review, error) {
	const q = `SELECT id, hall_id, customer_id, rating, COALESCE(comment, ''), created_at
	           FROM reviews WHERE hall_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, hallID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Review, 0)
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.HallID, &rv.CustomerID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// DeleteByIDAndCustomer removes a review when it belongs to the caller.
// A review owned by someone else yields ErrForbidden, not 404, so the
// author check happens before the delete.
func (r *ReviewRepo) DeleteByIDAndCustomer(ctx context.Context, id, customerID uint64) error {
	var actualCustomer uint64
	err := r.db.QueryRowContext(ctx, `SELECT customer_id FROM reviews WHERE id = ?`, id).Scan(&actualCustomer)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrReviewNotFound
		}
		return err
	}
	if actualCustomer != customerID {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	return err
}

// DeleteByID removes a review regardless of author.  Admin moderation
// only.
func (r *ReviewRepo) DeleteByID(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReviewNotFound
	}
	return nil
}
