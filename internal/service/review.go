package service

import (
	"context"
	"log"
	"math"
	"strconv"
	"strings"

	"skillswap_22520060/internal/model"
	"skillswap_22520060/internal/queue"
	"skillswap_22520060/internal/repository"
)

// ReviewService handles post-swap reviews. One review per reviewer per
// completed swap request, always about the other participant.
type ReviewService struct {
	repo      repository.ReviewRepository
	swapRepo  repository.SwapRequestRepository
	publisher queue.Publisher // nil disables event publishing
}

func NewReviewService(repo repository.ReviewRepository, swapRepo repository.SwapRequestRepository, publisher queue.Publisher) *ReviewService {
	return &ReviewService{
		repo:      repo,
		swapRepo:  swapRepo,
		publisher: publisher,
	}
}

// ReviewList is the aggregate returned when listing a user's reviews.
type ReviewList struct {
	TotalReviews  int
	AverageRating float64
	Reviews       []model.Review
}

// Create submits a review for a completed swap request.
func (s *ReviewService) Create(ctx context.Context, reviewerID int64, req *model.CreateReviewRequest) (*model.Review, error) {
	rating, err := parseRating(req.Rating.String())
	if err != nil {
		return nil, err
	}

	request, err := s.swapRepo.GetByID(ctx, req.SwapRequestID)
	if err != nil {
		return nil, err
	}
	if !request.IsParticipant(reviewerID) {
		return nil, model.ErrNotParticipant
	}
	if request.Status != model.SwapStatusCompleted {
		return nil, model.ErrReviewNotAllowed
	}
	if req.ReviewedUser != request.OtherParticipant(reviewerID) {
		return nil, model.ErrWrongReviewedUser
	}

	exists, err := s.repo.ExistsForReviewer(ctx, reviewerID, request.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrDuplicateReview
	}

	review := &model.Review{
		SwapRequestID:  request.ID,
		ReviewerID:     reviewerID,
		ReviewedUserID: req.ReviewedUser,
		Rating:         rating,
		Comment:        strings.TrimSpace(req.Comment),
	}

	// The unique (reviewer_id, swap_request_id) index backstops the
	// pre-check; the repo maps that violation to model.ErrDuplicateReview.
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	created, err := s.repo.GetByID(ctx, review.ID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, queue.NewReviewCreatedEvent(reviewerID, created.ReviewedUserID, created.ID, request.ID))

	return created, nil
}

// ListForUser returns the reviews written about a user, newest first, with
// the count and the average rating rounded to two decimals.
func (s *ReviewService) ListForUser(ctx context.Context, userID int64) (*ReviewList, error) {
	reviews, err := s.repo.ListByReviewedUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &ReviewList{
		TotalReviews: len(reviews),
		Reviews:      reviews,
	}
	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		avg := float64(sum) / float64(len(reviews))
		result.AverageRating = math.Round(avg*100) / 100
	}

	return result, nil
}

// parseRating accepts "4" or "4.0" style input and requires an integer in
// [1,5]. By the time it gets here 5 and "5" are indistinguishable.
func parseRating(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, model.ErrInvalidRating
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, model.ErrInvalidRating
	}
	if f < 1 || f > 5 || f != math.Trunc(f) {
		return 0, model.ErrInvalidRating
	}
	return int(f), nil
}

func (s *ReviewService) publish(ctx context.Context, event queue.NotificationEvent) {
	if s.publisher == nil {
		return
	}
	if _, err := s.publisher.Publish(ctx, queue.StreamNotifications, event); err != nil {
		log.Printf("[ReviewService] event publish failed: type=%s err=%v", event.Type, err)
	}
}
