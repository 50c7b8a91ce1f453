package model

import (
	"errors"
	"time"
)

// Report target types
const (
	ReportTargetUser        = "user"
	ReportTargetMessage     = "message"
	ReportTargetReview      = "review"
	ReportTargetSwapRequest = "swapRequest"
)

// Report workflow states
const (
	ReportStatusPending  = "pending"
	ReportStatusInReview = "in_review"
	ReportStatusResolved = "resolved"
	ReportStatusRejected = "rejected"
)

// Report is an abuse report filed by one user against another, transitioned
// only by administrators.
type Report struct {
	ID             int64      `db:"id" json:"id"`
	ReportedByID   int64      `db:"reported_by" json:"reportedById"`
	ReportedUserID int64      `db:"reported_user_id" json:"reportedUserId"`
	TargetType     string     `db:"target_type" json:"targetType"`
	TargetID       int64      `db:"target_id" json:"targetId"`
	Reason         string     `db:"reason" json:"reason"`
	Details        string     `db:"details" json:"details"`
	Status         string     `db:"status" json:"status"`
	ResolvedByID   *int64     `db:"resolved_by" json:"resolvedById"`
	ResolutionNote string     `db:"resolution_note" json:"resolutionNote"`
	ResolvedAt     *time.Time `db:"resolved_at" json:"resolvedAt"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`

	// Joined fields for display
	ReportedBy   *UserSummary `json:"reportedBy,omitempty"`
	ReportedUser *UserSummary `json:"reportedUser,omitempty"`
	ResolvedBy   *UserSummary `json:"resolvedBy,omitempty"`
}

// FileReportRequest is the request body for reporting a user
type FileReportRequest struct {
	ReportedUser int64  `json:"reportedUser"`
	Reason       string `json:"reason"`
	Details      string `json:"details"`
}

// ReportActionRequest is the admin moderation request body
type ReportActionRequest struct {
	Status         string `json:"status"`
	ResolutionNote string `json:"resolutionNote"`
	BlockUser      bool   `json:"blockUser"`
}

// ReportFilter narrows the admin report listing
type ReportFilter struct {
	Status     string
	TargetType string
}

var (
	// ErrReportNotFound is returned when a report cannot be found
	ErrReportNotFound = errors.New("report not found")

	// ErrSelfReport is returned when a user reports themselves
	ErrSelfReport = errors.New("you cannot report yourself")

	// ErrInvalidReportStatus is returned for an action outside in_review/resolved/rejected
	ErrInvalidReportStatus = errors.New("status must be one of in_review, resolved, rejected")

	// ErrReportedUserRequired is returned when the request body omits the reported user
	ErrReportedUserRequired = errors.New("reportedUser is required")

	// ErrReasonRequired is returned when the reason is empty or whitespace
	ErrReasonRequired = errors.New("report reason is required")
)
