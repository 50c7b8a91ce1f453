package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"skillswap_22520060/internal/model"
)

// swapRequestRepository implements SwapRequestRepository using sqlx
type swapRequestRepository struct {
	db *sqlx.DB
}

// NewSwapRequestRepository creates a new swap request repository
func NewSwapRequestRepository(db *sqlx.DB) SwapRequestRepository {
	return &swapRequestRepository{db: db}
}

// swapRequestRow flattens the request plus both participant summaries so a
// single joined query hydrates the response shape.
type swapRequestRow struct {
	model.SwapRequest
	FromName  string `db:"from_name"`
	FromEmail string `db:"from_email"`
	FromRole  string `db:"from_role"`
	ToName    string `db:"to_name"`
	ToEmail   string `db:"to_email"`
	ToRole    string `db:"to_role"`
}

func (row *swapRequestRow) toModel() *model.SwapRequest {
	req := row.SwapRequest
	req.FromUser = &model.UserSummary{ID: req.FromUserID, Name: row.FromName, Email: row.FromEmail, Role: row.FromRole}
	req.ToUser = &model.UserSummary{ID: req.ToUserID, Name: row.ToName, Email: row.ToEmail, Role: row.ToRole}
	return &req
}

const swapRequestSelect = `
	SELECT sr.id, sr.from_user_id, sr.to_user_id, sr.offered_skill, sr.wanted_skill,
	       sr.message, sr.status, sr.responded_at,
	       sr.from_completed, sr.to_completed, sr.completed_at,
	       sr.created_at, sr.updated_at,
	       fu.name AS from_name, fu.email AS from_email, fu.role AS from_role,
	       tu.name AS to_name, tu.email AS to_email, tu.role AS to_role
	FROM swap_requests sr
	JOIN users fu ON fu.id = sr.from_user_id
	JOIN users tu ON tu.id = sr.to_user_id
`

// Create inserts a new swap request in the pending state
func (r *swapRequestRepository) Create(ctx context.Context, req *model.SwapRequest) error {
	query := `
		INSERT INTO swap_requests (from_user_id, to_user_id, offered_skill, wanted_skill, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, status, created_at, updated_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		req.FromUserID,
		req.ToUserID,
		req.OfferedSkill,
		req.WantedSkill,
		req.Message,
		model.SwapStatusPending,
	)

	err := row.Scan(&req.ID, &req.Status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "swap_requests_pending_unique") {
			return model.ErrDuplicatePendingSwap
		}
		return fmt.Errorf("failed to insert swap request: %w", err)
	}

	return nil
}

// GetByID retrieves a swap request with both participant summaries joined
func (r *swapRequestRepository) GetByID(ctx context.Context, id int64) (*model.SwapRequest, error) {
	query := swapRequestSelect + ` WHERE sr.id = $1`

	var row swapRequestRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrSwapNotFound
		}
		return nil, fmt.Errorf("failed to get swap request: %w", err)
	}

	return row.toModel(), nil
}

// ExistsPending checks for an identical pending tuple
func (r *swapRequestRepository) ExistsPending(ctx context.Context, fromUserID, toUserID int64, offeredSkill, wantedSkill string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM swap_requests
			WHERE from_user_id = $1 AND to_user_id = $2
			  AND offered_skill = $3 AND wanted_skill = $4
			  AND status = $5
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, fromUserID, toUserID, offeredSkill, wantedSkill, model.SwapStatusPending)
	if err != nil {
		return false, fmt.Errorf("failed to check pending request: %w", err)
	}

	return exists, nil
}

// Update persists the lifecycle fields of the request
func (r *swapRequestRepository) Update(ctx context.Context, req *model.SwapRequest) error {
	query := `
		UPDATE swap_requests
		SET status = $1, responded_at = $2,
		    from_completed = $3, to_completed = $4, completed_at = $5,
		    updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		req.Status,
		req.RespondedAt,
		req.FromCompleted,
		req.ToCompleted,
		req.CompletedAt,
		req.ID,
	).Scan(&req.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.ErrSwapNotFound
		}
		return fmt.Errorf("failed to update swap request: %w", err)
	}

	return nil
}

// ConfirmCompletion sets the caller's confirmation flag in a single UPDATE
// so two participants confirming at the same time cannot overwrite each
// other. The status flips to completed inside the same statement when the
// other side's flag is already set.
func (r *swapRequestRepository) ConfirmCompletion(ctx context.Context, requestID int64, fromSide bool) (string, error) {
	mine, theirs := "to_completed", "from_completed"
	if fromSide {
		mine, theirs = "from_completed", "to_completed"
	}

	query := fmt.Sprintf(`
		UPDATE swap_requests
		SET %[1]s = TRUE,
		    status = CASE WHEN %[2]s THEN '%[3]s' ELSE status END,
		    completed_at = CASE WHEN %[2]s THEN NOW() ELSE completed_at END,
		    updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING status
	`, mine, theirs, model.SwapStatusCompleted)

	var status string
	err := r.db.QueryRowxContext(ctx, query, requestID, model.SwapStatusAccepted).Scan(&status)
	if err != nil {
		if err == sql.ErrNoRows {
			// The request left the accepted state between the caller's
			// read and this write.
			return "", model.ErrSwapNotAccepted
		}
		return "", fmt.Errorf("failed to confirm completion: %w", err)
	}

	return status, nil
}

// ListForUser returns every request the user participates in, newest first
func (r *swapRequestRepository) ListForUser(ctx context.Context, userID int64) ([]model.SwapRequest, error) {
	query := swapRequestSelect + `
		WHERE sr.from_user_id = $1 OR sr.to_user_id = $1
		ORDER BY sr.created_at DESC
	`

	var rows []swapRequestRow
	err := r.db.SelectContext(ctx, &rows, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list swap requests: %w", err)
	}

	requests := make([]model.SwapRequest, 0, len(rows))
	for i := range rows {
		requests = append(requests, *rows[i].toModel())
	}

	return requests, nil
}
