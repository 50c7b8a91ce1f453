package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"skillswap_22520060/internal/model"
)

// reportRepository implements ReportRepository using sqlx
type reportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepository{db: db}
}

type reportRow struct {
	model.Report
	ReporterName  string  `db:"reporter_name"`
	ReporterEmail string  `db:"reporter_email"`
	ReporterRole  string  `db:"reporter_role"`
	ReportedName  string  `db:"reported_name"`
	ReportedEmail string  `db:"reported_email"`
	ReportedRole  string  `db:"reported_role"`
	ResolverName  *string `db:"resolver_name"`
	ResolverEmail *string `db:"resolver_email"`
	ResolverRole  *string `db:"resolver_role"`
}

func (row *reportRow) toModel() *model.Report {
	rp := row.Report
	rp.ReportedBy = &model.UserSummary{ID: rp.ReportedByID, Name: row.ReporterName, Email: row.ReporterEmail, Role: row.ReporterRole}
	rp.ReportedUser = &model.UserSummary{ID: rp.ReportedUserID, Name: row.ReportedName, Email: row.ReportedEmail, Role: row.ReportedRole}
	if rp.ResolvedByID != nil && row.ResolverName != nil {
		rp.ResolvedBy = &model.UserSummary{ID: *rp.ResolvedByID, Name: *row.ResolverName, Email: *row.ResolverEmail, Role: *row.ResolverRole}
	}
	return &rp
}

const reportSelect = `
	SELECT rp.id, rp.reported_by, rp.reported_user_id, rp.target_type, rp.target_id,
	       rp.reason, rp.details, rp.status, rp.resolved_by, rp.resolution_note,
	       rp.resolved_at, rp.created_at, rp.updated_at,
	       u1.name AS reporter_name, u1.email AS reporter_email, u1.role AS reporter_role,
	       u2.name AS reported_name, u2.email AS reported_email, u2.role AS reported_role,
	       u3.name AS resolver_name, u3.email AS resolver_email, u3.role AS resolver_role
	FROM reports rp
	JOIN users u1 ON u1.id = rp.reported_by
	JOIN users u2 ON u2.id = rp.reported_user_id
	LEFT JOIN users u3 ON u3.id = rp.resolved_by
`

// Create inserts a new report in the pending state
func (r *reportRepository) Create(ctx context.Context, report *model.Report) error {
	query := `
		INSERT INTO reports (reported_by, reported_user_id, target_type, target_id, reason, details, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, status, created_at, updated_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		report.ReportedByID,
		report.ReportedUserID,
		report.TargetType,
		report.TargetID,
		report.Reason,
		report.Details,
		model.ReportStatusPending,
	)

	if err := row.Scan(&report.ID, &report.Status, &report.CreatedAt, &report.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}

	return nil
}

// GetByID retrieves a report with reporter/reported/resolver summaries
func (r *reportRepository) GetByID(ctx context.Context, id int64) (*model.Report, error) {
	query := reportSelect + ` WHERE rp.id = $1`

	var row reportRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return row.toModel(), nil
}

// List returns reports newest first, optionally filtered by status and target type
func (r *reportRepository) List(ctx context.Context, filter model.ReportFilter) ([]model.Report, error) {
	query := reportSelect + ` WHERE ($1 = '' OR rp.status = $1) AND ($2 = '' OR rp.target_type = $2)
		ORDER BY rp.created_at DESC`

	var rows []reportRow
	err := r.db.SelectContext(ctx, &rows, query, filter.Status, filter.TargetType)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	reports := make([]model.Report, 0, len(rows))
	for i := range rows {
		reports = append(reports, *rows[i].toModel())
	}

	return reports, nil
}

// Update persists the moderation fields of the report
func (r *reportRepository) Update(ctx context.Context, report *model.Report) error {
	query := `
		UPDATE reports
		SET status = $1, resolved_by = $2, resolution_note = $3, resolved_at = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		report.Status,
		report.ResolvedByID,
		report.ResolutionNote,
		report.ResolvedAt,
		report.ID,
	).Scan(&report.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.ErrReportNotFound
		}
		return fmt.Errorf("failed to update report: %w", err)
	}

	return nil
}
