package service

import (
	"context"
	"errors"
	"testing"

	"skillswap_22520060/internal/model"
	"skillswap_22520060/internal/queue"
)

func pendingReport() *model.Report {
	return &model.Report{
		ID:             20,
		ReportedByID:   1,
		ReportedUserID: 2,
		TargetType:     model.ReportTargetUser,
		TargetID:       2,
		Reason:         "spam",
		Status:         model.ReportStatusPending,
	}
}

func TestReportService_File_Success(t *testing.T) {
	userRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id}, nil
		},
	}
	var created *model.Report
	reportRepo := &mockReportRepository{
		createFn: func(ctx context.Context, report *model.Report) error {
			report.ID = 20
			created = report
			return nil
		},
		getByIDFn: func(ctx context.Context, id int64) (*model.Report, error) {
			return created, nil
		},
	}
	svc := NewReportService(reportRepo, userRepo, nil)

	report, err := svc.File(context.Background(), 1, &model.FileReportRequest{
		ReportedUser: 2,
		Reason:       " spam ",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if report.Status != model.ReportStatusPending {
		t.Errorf("status = %q, want pending", report.Status)
	}
	if report.Reason != "spam" {
		t.Errorf("reason = %q, want trimmed", report.Reason)
	}
	if report.TargetType != model.ReportTargetUser {
		t.Errorf("targetType = %q, want user", report.TargetType)
	}
}

func TestReportService_File_SelfReport(t *testing.T) {
	svc := NewReportService(&mockReportRepository{}, &mockUserRepository{}, nil)

	_, err := svc.File(context.Background(), 1, &model.FileReportRequest{
		ReportedUser: 1, Reason: "spam",
	})
	if !errors.Is(err, model.ErrSelfReport) {
		t.Errorf("err = %v, want ErrSelfReport", err)
	}
}

func TestReportService_File_UnknownTarget(t *testing.T) {
	svc := NewReportService(&mockReportRepository{}, &mockUserRepository{}, nil)

	_, err := svc.File(context.Background(), 1, &model.FileReportRequest{
		ReportedUser: 404, Reason: "spam",
	})
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestReportService_File_WhitespaceReason(t *testing.T) {
	svc := NewReportService(&mockReportRepository{}, &mockUserRepository{}, nil)

	_, err := svc.File(context.Background(), 1, &model.FileReportRequest{
		ReportedUser: 2,
		Reason:       "   ",
	})
	if !errors.Is(err, model.ErrReasonRequired) {
		t.Errorf("err = %v, want ErrReasonRequired", err)
	}

	_, err = svc.File(context.Background(), 1, &model.FileReportRequest{Reason: "spam"})
	if !errors.Is(err, model.ErrReportedUserRequired) {
		t.Errorf("err = %v, want ErrReportedUserRequired", err)
	}
}

func TestReportService_TakeAction_FailedUpdateLeavesUserUnblocked(t *testing.T) {
	state := pendingReport()
	reportRepo := &mockReportRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Report, error) {
			return state, nil
		},
		updateFn: func(ctx context.Context, report *model.Report) error {
			return errors.New("connection reset")
		},
	}
	userRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Role: model.RoleUser}, nil
		},
	}
	svc := NewReportService(reportRepo, userRepo, nil)

	_, err := svc.TakeAction(context.Background(), 9, 20, &model.ReportActionRequest{
		Status:    model.ReportStatusResolved,
		BlockUser: true,
	})
	if err == nil {
		t.Fatal("expected the update failure to surface")
	}
	if userRepo.setBlockedCalls != 0 {
		t.Errorf("setBlockedCalls = %d, want 0 when the resolution never persisted", userRepo.setBlockedCalls)
	}
}

func TestReportService_TakeAction_InvalidStatus(t *testing.T) {
	svc := NewReportService(&mockReportRepository{}, &mockUserRepository{}, nil)

	_, err := svc.TakeAction(context.Background(), 9, 20, &model.ReportActionRequest{Status: "pending"})
	if !errors.Is(err, model.ErrInvalidReportStatus) {
		t.Errorf("err = %v, want ErrInvalidReportStatus", err)
	}
}

func TestReportService_TakeAction_ResolveWithBlock(t *testing.T) {
	state := pendingReport()
	reportRepo := &mockReportRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Report, error) {
			return state, nil
		},
	}
	userRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Role: model.RoleUser}, nil
		},
	}
	pub := &mockPublisher{}
	svc := NewReportService(reportRepo, userRepo, pub)

	report, err := svc.TakeAction(context.Background(), 9, 20, &model.ReportActionRequest{
		Status:    model.ReportStatusResolved,
		BlockUser: true,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if report.Status != model.ReportStatusResolved {
		t.Errorf("status = %q, want resolved", report.Status)
	}
	if report.ResolvedByID == nil || *report.ResolvedByID != 9 {
		t.Errorf("resolvedBy = %v, want the acting admin 9", report.ResolvedByID)
	}
	if report.ResolvedAt == nil {
		t.Error("resolvedAt should be stamped for resolved")
	}
	if userRepo.setBlockedCalls != 1 {
		t.Errorf("SetBlocked called %d times, want 1", userRepo.setBlockedCalls)
	}
	if len(pub.events) != 1 || pub.events[0].Type != queue.EventReportResolved {
		t.Errorf("events = %v, want one report_resolved", pub.events)
	}
	if pub.events[0].RecipientID != 1 {
		t.Errorf("event recipient = %d, want the reporter 1", pub.events[0].RecipientID)
	}
	if !pub.events[0].UserBlocked {
		t.Error("event should record the block outcome")
	}
}

func TestReportService_TakeAction_BlockSkipsAdminTarget(t *testing.T) {
	reportRepo := &mockReportRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Report, error) {
			return pendingReport(), nil
		},
	}
	userRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Role: model.RoleAdmin}, nil
		},
	}
	svc := NewReportService(reportRepo, userRepo, nil)

	_, err := svc.TakeAction(context.Background(), 9, 20, &model.ReportActionRequest{
		Status:    model.ReportStatusResolved,
		BlockUser: true,
	})
	if !errors.Is(err, model.ErrAdminNotBlockable) {
		t.Errorf("err = %v, want ErrAdminNotBlockable", err)
	}
	if userRepo.setBlockedCalls != 0 {
		t.Error("an admin target must never be blocked")
	}
}

func TestReportService_TakeAction_InReviewClearsResolvedAt(t *testing.T) {
	state := pendingReport()
	reportRepo := &mockReportRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Report, error) {
			return state, nil
		},
	}
	pub := &mockPublisher{}
	svc := NewReportService(reportRepo, &mockUserRepository{}, pub)

	report, err := svc.TakeAction(context.Background(), 9, 20, &model.ReportActionRequest{
		Status: model.ReportStatusInReview,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if report.ResolvedAt != nil {
		t.Error("resolvedAt must be cleared for in_review")
	}
	if len(pub.events) != 0 {
		t.Error("in_review is not an outcome; no event expected")
	}
}
