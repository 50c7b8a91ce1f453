package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"skillswap_22520060/internal/model"
)

// reviewRepository implements ReviewRepository using sqlx
type reviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *sqlx.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

type reviewRow struct {
	model.Review
	ReviewerName  string `db:"reviewer_name"`
	ReviewerEmail string `db:"reviewer_email"`
	ReviewerRole  string `db:"reviewer_role"`
	ReviewedName  string `db:"reviewed_name"`
	ReviewedEmail string `db:"reviewed_email"`
	ReviewedRole  string `db:"reviewed_role"`
	SwapOffered   string `db:"swap_offered"`
	SwapWanted    string `db:"swap_wanted"`
	SwapStatus    string `db:"swap_status"`
}

func (row *reviewRow) toModel() *model.Review {
	rv := row.Review
	rv.Reviewer = &model.UserSummary{ID: rv.ReviewerID, Name: row.ReviewerName, Email: row.ReviewerEmail, Role: row.ReviewerRole}
	rv.Reviewed = &model.UserSummary{ID: rv.ReviewedUserID, Name: row.ReviewedName, Email: row.ReviewedEmail, Role: row.ReviewedRole}
	rv.SwapRequest = &model.SwapSummary{
		ID:           rv.SwapRequestID,
		OfferedSkill: row.SwapOffered,
		WantedSkill:  row.SwapWanted,
		Status:       row.SwapStatus,
	}
	return &rv
}

const reviewSelect = `
	SELECT rv.id, rv.swap_request_id, rv.reviewer_id, rv.reviewed_user_id,
	       rv.rating, rv.comment, rv.created_at,
	       u1.name AS reviewer_name, u1.email AS reviewer_email, u1.role AS reviewer_role,
	       u2.name AS reviewed_name, u2.email AS reviewed_email, u2.role AS reviewed_role,
	       sr.offered_skill AS swap_offered, sr.wanted_skill AS swap_wanted, sr.status AS swap_status
	FROM reviews rv
	JOIN users u1 ON u1.id = rv.reviewer_id
	JOIN users u2 ON u2.id = rv.reviewed_user_id
	JOIN swap_requests sr ON sr.id = rv.swap_request_id
`

// Create inserts a new review
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (swap_request_id, reviewer_id, reviewed_user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		review.SwapRequestID,
		review.ReviewerID,
		review.ReviewedUserID,
		review.Rating,
		review.Comment,
	)

	if err := row.Scan(&review.ID, &review.CreatedAt); err != nil {
		if isUniqueViolation(err, "reviews_reviewer_request_unique") {
			return model.ErrDuplicateReview
		}
		return fmt.Errorf("failed to insert review: %w", err)
	}

	return nil
}

// GetByID retrieves a review with joined summaries
func (r *reviewRepository) GetByID(ctx context.Context, id int64) (*model.Review, error) {
	query := reviewSelect + ` WHERE rv.id = $1`

	var row reviewRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("review %d not found", id)
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return row.toModel(), nil
}

// ExistsForReviewer checks whether the reviewer already reviewed this request
func (r *reviewRepository) ExistsForReviewer(ctx context.Context, reviewerID, swapRequestID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM reviews WHERE reviewer_id = $1 AND swap_request_id = $2)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, reviewerID, swapRequestID)
	if err != nil {
		return false, fmt.Errorf("failed to check existing review: %w", err)
	}

	return exists, nil
}

// ListByReviewedUser returns all reviews about a user, newest first
func (r *reviewRepository) ListByReviewedUser(ctx context.Context, userID int64) ([]model.Review, error) {
	query := reviewSelect + `
		WHERE rv.reviewed_user_id = $1
		ORDER BY rv.created_at DESC
	`

	var rows []reviewRow
	err := r.db.SelectContext(ctx, &rows, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	reviews := make([]model.Review, 0, len(rows))
	for i := range rows {
		reviews = append(reviews, *rows[i].toModel())
	}

	return reviews, nil
}
