package service

import (
	"context"
	"log"
	"strings"
	"time"

	"skillswap_22520060/internal/model"
	"skillswap_22520060/internal/queue"
	"skillswap_22520060/internal/repository"
)

// ReportService handles abuse reports and admin moderation.
type ReportService struct {
	repo      repository.ReportRepository
	userRepo  repository.UserRepository
	publisher queue.Publisher // nil disables event publishing
}

func NewReportService(repo repository.ReportRepository, userRepo repository.UserRepository, publisher queue.Publisher) *ReportService {
	return &ReportService{
		repo:      repo,
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// File records an abuse report against another user.
func (s *ReportService) File(ctx context.Context, reporterID int64, req *model.FileReportRequest) (*model.Report, error) {
	reason := strings.TrimSpace(req.Reason)
	if req.ReportedUser <= 0 {
		return nil, model.ErrReportedUserRequired
	}
	if reason == "" {
		return nil, model.ErrReasonRequired
	}
	if req.ReportedUser == reporterID {
		return nil, model.ErrSelfReport
	}

	if _, err := s.userRepo.GetByID(ctx, req.ReportedUser); err != nil {
		return nil, err
	}

	report := &model.Report{
		ReportedByID:   reporterID,
		ReportedUserID: req.ReportedUser,
		TargetType:     model.ReportTargetUser,
		TargetID:       req.ReportedUser,
		Reason:         reason,
		Details:        strings.TrimSpace(req.Details),
		Status:         model.ReportStatusPending,
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, report.ID)
}

// List returns reports for the admin dashboard, optionally filtered.
func (s *ReportService) List(ctx context.Context, filter model.ReportFilter) ([]model.Report, error) {
	return s.repo.List(ctx, filter)
}

// TakeAction moves a report to in_review, resolved, or rejected. Resolving
// with BlockUser also blocks the reported account, unless it is an admin.
func (s *ReportService) TakeAction(ctx context.Context, adminID, reportID int64, req *model.ReportActionRequest) (*model.Report, error) {
	switch req.Status {
	case model.ReportStatusInReview, model.ReportStatusResolved, model.ReportStatusRejected:
	default:
		return nil, model.ErrInvalidReportStatus
	}

	report, err := s.repo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	report.Status = req.Status
	report.ResolvedByID = &adminID
	report.ResolutionNote = strings.TrimSpace(req.ResolutionNote)
	report.ResolvedAt = nil
	if req.Status == model.ReportStatusResolved || req.Status == model.ReportStatusRejected {
		report.ResolvedAt = &now
	}

	blocked := false
	var blockTargetID int64
	if req.Status == model.ReportStatusResolved && req.BlockUser {
		target, err := s.userRepo.GetByID(ctx, report.ReportedUserID)
		if err != nil {
			return nil, err
		}
		if target.Role == model.RoleAdmin {
			return nil, model.ErrAdminNotBlockable
		}
		if !target.IsBlocked {
			blockTargetID = target.ID
		}
		blocked = true
	}

	if err := s.repo.Update(ctx, report); err != nil {
		return nil, err
	}

	// Block only after the resolution is persisted, so a failed update
	// never leaves a blocked user behind a still-pending report.
	if blockTargetID != 0 {
		if _, err := s.userRepo.SetBlocked(ctx, blockTargetID, true); err != nil {
			return nil, err
		}
	}

	// The reporter learns the outcome when the report leaves the queue.
	if req.Status == model.ReportStatusResolved || req.Status == model.ReportStatusRejected {
		s.publish(ctx, queue.NewReportResolvedEvent(adminID, report.ReportedByID, report.ID, report.Status, blocked))
	}

	return s.repo.GetByID(ctx, report.ID)
}

func (s *ReportService) publish(ctx context.Context, event queue.NotificationEvent) {
	if s.publisher == nil {
		return
	}
	if _, err := s.publisher.Publish(ctx, queue.StreamNotifications, event); err != nil {
		log.Printf("[ReportService] event publish failed: type=%s err=%v", event.Type, err)
	}
}
