package review

import "time"

// Review represents a client's rating of a provider for a completed booking
type Review struct {
	ID         int64     `json:"id"`
	BookingID  int64     `json:"booking_id"`
	ReviewerID int64     `json:"reviewer_id"`
	RevieweeID int64     `json:"reviewee_id"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`

	// Populated via JOIN
	ReviewerName string `json:"reviewer_name,omitempty"`
}
