package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateRejectsOutOfRangeRating(t *testing.T) {
	// Rating bounds are checked before any dependency is touched
	svc := NewService(nil, nil, nil)

	for _, rating := range []int{0, -1, 6, 100} {
		_, err := svc.Create(context.Background(), 1, &CreateReviewRequest{
			BookingID: 1,
			Rating:    rating,
		})
		assert.ErrorIs(t, err, ErrInvalidRating, "rating %d", rating)
	}
}
