package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"skillswap_22520060/internal/model"
)

// messageRepository implements MessageRepository using sqlx
type messageRepository struct {
	db *sqlx.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *sqlx.DB) MessageRepository {
	return &messageRepository{db: db}
}

type messageRow struct {
	model.Message
	SenderName    string `db:"sender_name"`
	SenderEmail   string `db:"sender_email"`
	SenderRole    string `db:"sender_role"`
	ReceiverName  string `db:"receiver_name"`
	ReceiverEmail string `db:"receiver_email"`
	ReceiverRole  string `db:"receiver_role"`
	SwapOffered   string `db:"swap_offered"`
	SwapWanted    string `db:"swap_wanted"`
	SwapStatus    string `db:"swap_status"`
}

func (row *messageRow) toModel() *model.Message {
	msg := row.Message
	msg.Sender = &model.UserSummary{ID: msg.SenderID, Name: row.SenderName, Email: row.SenderEmail, Role: row.SenderRole}
	msg.Receiver = &model.UserSummary{ID: msg.ReceiverID, Name: row.ReceiverName, Email: row.ReceiverEmail, Role: row.ReceiverRole}
	msg.SwapRequest = &model.SwapSummary{
		ID:           msg.SwapRequestID,
		OfferedSkill: row.SwapOffered,
		WantedSkill:  row.SwapWanted,
		Status:       row.SwapStatus,
	}
	return &msg
}

const messageSelect = `
	SELECT m.id, m.swap_request_id, m.sender_id, m.receiver_id, m.content,
	       m.is_read, m.read_at, m.created_at,
	       su.name AS sender_name, su.email AS sender_email, su.role AS sender_role,
	       ru.name AS receiver_name, ru.email AS receiver_email, ru.role AS receiver_role,
	       sr.offered_skill AS swap_offered, sr.wanted_skill AS swap_wanted, sr.status AS swap_status
	FROM messages m
	JOIN users su ON su.id = m.sender_id
	JOIN users ru ON ru.id = m.receiver_id
	JOIN swap_requests sr ON sr.id = m.swap_request_id
`

// Create inserts a new message
func (r *messageRepository) Create(ctx context.Context, msg *model.Message) error {
	query := `
		INSERT INTO messages (swap_request_id, sender_id, receiver_id, content, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, is_read, created_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		msg.SwapRequestID,
		msg.SenderID,
		msg.ReceiverID,
		msg.Content,
	)

	if err := row.Scan(&msg.ID, &msg.IsRead, &msg.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	return nil
}

// GetByID retrieves a message with participant and request summaries joined
func (r *messageRepository) GetByID(ctx context.Context, id int64) (*model.Message, error) {
	query := messageSelect + ` WHERE m.id = $1`

	var row messageRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("message %d not found", id)
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	return row.toModel(), nil
}

// ListBySwapRequest returns the conversation oldest first
func (r *messageRepository) ListBySwapRequest(ctx context.Context, swapRequestID int64) ([]model.Message, error) {
	query := messageSelect + `
		WHERE m.swap_request_id = $1
		ORDER BY m.created_at ASC
	`

	var rows []messageRow
	err := r.db.SelectContext(ctx, &rows, query, swapRequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	messages := make([]model.Message, 0, len(rows))
	for i := range rows {
		messages = append(messages, *rows[i].toModel())
	}

	return messages, nil
}
