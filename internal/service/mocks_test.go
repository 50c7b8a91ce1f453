package service

import (
	"context"
	"time"

	"skillswap_22520060/internal/model"
	"skillswap_22520060/internal/queue"
)

// Mock repositories implement the repository interfaces with per-test
// function fields, so each test controls exactly what the store returns.

type mockUserRepository struct {
	createFn              func(ctx context.Context, user *model.User) error
	getByIDFn             func(ctx context.Context, id int64) (*model.User, error)
	getByEmailFn          func(ctx context.Context, email string) (*model.User, error)
	existsByEmailFn       func(ctx context.Context, email string, excludeID int64) (bool, error)
	updateFn              func(ctx context.Context, user *model.User) error
	setBlockedFn          func(ctx context.Context, id int64, blocked bool) (*model.User, error)
	setResetTokenFn       func(ctx context.Context, id int64, tokenHash string, expires time.Time) error
	clearResetTokenFn     func(ctx context.Context, id int64) error
	getByResetTokenHashFn func(ctx context.Context, tokenHash string, now time.Time) (*model.User, error)
	updatePasswordFn      func(ctx context.Context, id int64, passwordHashed string) error
	searchBySkillFn       func(ctx context.Context, keyword string) ([]model.User, error)
	listAllFn             func(ctx context.Context) ([]model.User, error)

	createCalls     int
	setBlockedCalls int
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	if m.existsByEmailFn != nil {
		return m.existsByEmailFn(ctx, email, excludeID)
	}
	return false, nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *model.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) SetBlocked(ctx context.Context, id int64, blocked bool) (*model.User, error) {
	m.setBlockedCalls++
	if m.setBlockedFn != nil {
		return m.setBlockedFn(ctx, id, blocked)
	}
	return &model.User{ID: id, IsBlocked: blocked}, nil
}

func (m *mockUserRepository) SetResetToken(ctx context.Context, id int64, tokenHash string, expires time.Time) error {
	if m.setResetTokenFn != nil {
		return m.setResetTokenFn(ctx, id, tokenHash, expires)
	}
	return nil
}

func (m *mockUserRepository) ClearResetToken(ctx context.Context, id int64) error {
	if m.clearResetTokenFn != nil {
		return m.clearResetTokenFn(ctx, id)
	}
	return nil
}

func (m *mockUserRepository) GetByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*model.User, error) {
	if m.getByResetTokenHashFn != nil {
		return m.getByResetTokenHashFn(ctx, tokenHash, now)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id int64, passwordHashed string) error {
	if m.updatePasswordFn != nil {
		return m.updatePasswordFn(ctx, id, passwordHashed)
	}
	return nil
}

func (m *mockUserRepository) SearchBySkill(ctx context.Context, keyword string) ([]model.User, error) {
	if m.searchBySkillFn != nil {
		return m.searchBySkillFn(ctx, keyword)
	}
	return nil, nil
}

func (m *mockUserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return nil, nil
}

type mockSwapRepository struct {
	createFn            func(ctx context.Context, req *model.SwapRequest) error
	getByIDFn           func(ctx context.Context, id int64) (*model.SwapRequest, error)
	existsPendingFn     func(ctx context.Context, fromUserID, toUserID int64, offeredSkill, wantedSkill string) (bool, error)
	updateFn            func(ctx context.Context, req *model.SwapRequest) error
	confirmCompletionFn func(ctx context.Context, requestID int64, fromSide bool) (string, error)
	listForUserFn       func(ctx context.Context, userID int64) ([]model.SwapRequest, error)

	updated *model.SwapRequest
}

func (m *mockSwapRepository) Create(ctx context.Context, req *model.SwapRequest) error {
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	req.ID = 1
	return nil
}

func (m *mockSwapRepository) GetByID(ctx context.Context, id int64) (*model.SwapRequest, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrSwapNotFound
}

func (m *mockSwapRepository) ExistsPending(ctx context.Context, fromUserID, toUserID int64, offeredSkill, wantedSkill string) (bool, error) {
	if m.existsPendingFn != nil {
		return m.existsPendingFn(ctx, fromUserID, toUserID, offeredSkill, wantedSkill)
	}
	return false, nil
}

func (m *mockSwapRepository) Update(ctx context.Context, req *model.SwapRequest) error {
	m.updated = req
	if m.updateFn != nil {
		return m.updateFn(ctx, req)
	}
	return nil
}

// ConfirmCompletion mirrors the store's single-statement semantics: the
// caller's flag is set and the status flips when the other flag is already
// set, all against whatever request GetByID serves.
func (m *mockSwapRepository) ConfirmCompletion(ctx context.Context, requestID int64, fromSide bool) (string, error) {
	if m.confirmCompletionFn != nil {
		return m.confirmCompletionFn(ctx, requestID, fromSide)
	}
	req, err := m.GetByID(ctx, requestID)
	if err != nil {
		return "", err
	}
	if req.Status != model.SwapStatusAccepted {
		return "", model.ErrSwapNotAccepted
	}
	if fromSide {
		req.FromCompleted = true
	} else {
		req.ToCompleted = true
	}
	if req.FromCompleted && req.ToCompleted {
		now := time.Now()
		req.Status = model.SwapStatusCompleted
		req.CompletedAt = &now
	}
	return req.Status, nil
}

func (m *mockSwapRepository) ListForUser(ctx context.Context, userID int64) ([]model.SwapRequest, error) {
	if m.listForUserFn != nil {
		return m.listForUserFn(ctx, userID)
	}
	return nil, nil
}

type mockMessageRepository struct {
	createFn            func(ctx context.Context, msg *model.Message) error
	getByIDFn           func(ctx context.Context, id int64) (*model.Message, error)
	listBySwapRequestFn func(ctx context.Context, swapRequestID int64) ([]model.Message, error)
}

func (m *mockMessageRepository) Create(ctx context.Context, msg *model.Message) error {
	if m.createFn != nil {
		return m.createFn(ctx, msg)
	}
	msg.ID = 1
	return nil
}

func (m *mockMessageRepository) GetByID(ctx context.Context, id int64) (*model.Message, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return &model.Message{ID: id}, nil
}

func (m *mockMessageRepository) ListBySwapRequest(ctx context.Context, swapRequestID int64) ([]model.Message, error) {
	if m.listBySwapRequestFn != nil {
		return m.listBySwapRequestFn(ctx, swapRequestID)
	}
	return nil, nil
}

type mockReviewRepository struct {
	createFn             func(ctx context.Context, review *model.Review) error
	getByIDFn            func(ctx context.Context, id int64) (*model.Review, error)
	existsForReviewerFn  func(ctx context.Context, reviewerID, swapRequestID int64) (bool, error)
	listByReviewedUserFn func(ctx context.Context, userID int64) ([]model.Review, error)
}

func (m *mockReviewRepository) Create(ctx context.Context, review *model.Review) error {
	if m.createFn != nil {
		return m.createFn(ctx, review)
	}
	review.ID = 1
	return nil
}

func (m *mockReviewRepository) GetByID(ctx context.Context, id int64) (*model.Review, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return &model.Review{ID: id}, nil
}

func (m *mockReviewRepository) ExistsForReviewer(ctx context.Context, reviewerID, swapRequestID int64) (bool, error) {
	if m.existsForReviewerFn != nil {
		return m.existsForReviewerFn(ctx, reviewerID, swapRequestID)
	}
	return false, nil
}

func (m *mockReviewRepository) ListByReviewedUser(ctx context.Context, userID int64) ([]model.Review, error) {
	if m.listByReviewedUserFn != nil {
		return m.listByReviewedUserFn(ctx, userID)
	}
	return nil, nil
}

type mockReportRepository struct {
	createFn  func(ctx context.Context, report *model.Report) error
	getByIDFn func(ctx context.Context, id int64) (*model.Report, error)
	listFn    func(ctx context.Context, filter model.ReportFilter) ([]model.Report, error)
	updateFn  func(ctx context.Context, report *model.Report) error

	updated *model.Report
}

func (m *mockReportRepository) Create(ctx context.Context, report *model.Report) error {
	if m.createFn != nil {
		return m.createFn(ctx, report)
	}
	report.ID = 1
	return nil
}

func (m *mockReportRepository) GetByID(ctx context.Context, id int64) (*model.Report, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrReportNotFound
}

func (m *mockReportRepository) List(ctx context.Context, filter model.ReportFilter) ([]model.Report, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockReportRepository) Update(ctx context.Context, report *model.Report) error {
	m.updated = report
	if m.updateFn != nil {
		return m.updateFn(ctx, report)
	}
	return nil
}

type mockNotificationRepository struct {
	createFn      func(ctx context.Context, n *model.Notification) error
	getByIDFn     func(ctx context.Context, id int64) (*model.Notification, error)
	listByUserFn  func(ctx context.Context, userID int64) ([]model.Notification, error)
	countUnreadFn func(ctx context.Context, userID int64) (int, error)
	markReadFn    func(ctx context.Context, id int64, readAt time.Time) error
	markAllReadFn func(ctx context.Context, userID int64, readAt time.Time) (int64, error)
}

func (m *mockNotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	if m.createFn != nil {
		return m.createFn(ctx, n)
	}
	n.ID = 1
	return nil
}

func (m *mockNotificationRepository) GetByID(ctx context.Context, id int64) (*model.Notification, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrNotificationNotFound
}

func (m *mockNotificationRepository) ListByUser(ctx context.Context, userID int64) ([]model.Notification, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockNotificationRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	if m.countUnreadFn != nil {
		return m.countUnreadFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockNotificationRepository) MarkRead(ctx context.Context, id int64, readAt time.Time) error {
	if m.markReadFn != nil {
		return m.markReadFn(ctx, id, readAt)
	}
	return nil
}

func (m *mockNotificationRepository) MarkAllRead(ctx context.Context, userID int64, readAt time.Time) (int64, error) {
	if m.markAllReadFn != nil {
		return m.markAllReadFn(ctx, userID, readAt)
	}
	return 0, nil
}

// mockPublisher records published events.
type mockPublisher struct {
	events []queue.NotificationEvent
	err    error
}

func (m *mockPublisher) Publish(ctx context.Context, stream string, event queue.NotificationEvent) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.events = append(m.events, event)
	return "1-0", nil
}

// mockPhotoStore fakes the R2 store.
type mockPhotoStore struct {
	uploadFn func(ctx context.Context, dataURI string) (*model.UploadResult, error)
	deleted  []string
}

func (m *mockPhotoStore) UploadProfilePhoto(ctx context.Context, dataURI string) (*model.UploadResult, error) {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, dataURI)
	}
	return &model.UploadResult{URL: "https://cdn.example.com/avatars/x.jpg", Key: "avatars/x.jpg"}, nil
}

func (m *mockPhotoStore) DeleteObject(ctx context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	return nil
}

// mockMailer records outgoing reset mails.
type mockMailer struct {
	err  error
	sent []string // reset URLs
}

func (m *mockMailer) SendPasswordReset(to, name, resetURL string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, resetURL)
	return nil
}
