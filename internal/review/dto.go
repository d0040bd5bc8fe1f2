package review

import "time"

// CreateReviewRequest represents the request body for creating a review
type CreateReviewRequest struct {
	BookingID int64   `json:"booking_id" validate:"required"`
	Rating    int     `json:"rating" validate:"required,min=1,max=5"`
	Comment   *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

// ReviewResponse represents the response for a single review
type ReviewResponse struct {
	ID           int64   `json:"id"`
	BookingID    int64   `json:"booking_id"`
	ReviewerID   int64   `json:"reviewer_id"`
	RevieweeID   int64   `json:"reviewee_id"`
	Rating       int     `json:"rating"`
	Comment      *string `json:"comment,omitempty"`
	ReviewerName string  `json:"reviewer_name,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// ToResponse converts a Review model to a ReviewResponse DTO
func (rv *Review) ToResponse() *ReviewResponse {
	return &ReviewResponse{
		ID:           rv.ID,
		BookingID:    rv.BookingID,
		ReviewerID:   rv.ReviewerID,
		RevieweeID:   rv.RevieweeID,
		Rating:       rv.Rating,
		Comment:      rv.Comment,
		ReviewerName: rv.ReviewerName,
		CreatedAt:    rv.CreatedAt.Format(time.RFC3339),
	}
}
