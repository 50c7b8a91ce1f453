package model

import (
	"encoding/json"
	"errors"
	"time"
)

// Review is one rating+comment per (reviewer, swap request) pair, permitted
// only after the referenced request is completed.
type Review struct {
	ID             int64     `db:"id" json:"id"`
	SwapRequestID  int64     `db:"swap_request_id" json:"swapRequestId"`
	ReviewerID     int64     `db:"reviewer_id" json:"reviewerId"`
	ReviewedUserID int64     `db:"reviewed_user_id" json:"reviewedUserId"`
	Rating         int       `db:"rating" json:"rating"`
	Comment        string    `db:"comment" json:"comment"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`

	// Joined fields for display
	Reviewer    *UserSummary `json:"reviewer,omitempty"`
	Reviewed    *UserSummary `json:"reviewedUser,omitempty"`
	SwapRequest *SwapSummary `json:"swapRequest,omitempty"`
}

// Rating carries the raw rating text so both 5 and "5" coerce the same way.
// Validation happens in the service, not here.
type Rating string

func (r *Rating) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = Rating(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*r = Rating(n)
	return nil
}

func (r Rating) String() string { return string(r) }

// CreateReviewRequest is the request body for submitting a review
type CreateReviewRequest struct {
	SwapRequestID int64  `json:"swapRequestId"`
	ReviewedUser  int64  `json:"reviewedUser"`
	Rating        Rating `json:"rating"`
	Comment       string `json:"comment"`
}

var (
	// ErrInvalidRating is returned when rating is not an integer in [1,5]
	ErrInvalidRating = errors.New("rating must be a number between 1 and 5")

	// ErrReviewNotAllowed gates reviews on the completed state
	ErrReviewNotAllowed = errors.New("reviews are allowed only after the skill swap session is completed")

	// ErrWrongReviewedUser is returned when reviewedUser is not the other participant
	ErrWrongReviewedUser = errors.New("you can only review the other participant of this swap request")

	// ErrDuplicateReview is returned on a second review for the same request
	ErrDuplicateReview = errors.New("you have already submitted a review for this swap request")
)
