package provider

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Repository handles database operations for provider profiles
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new provider repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const profileColumns = `
	p.id, p.user_id, p.profession, p.bio, p.skills, p.hourly_rate,
	p.location, p.profile_image_url, p.is_verified, p.average_rating,
	p.total_reviews, p.created_at, p.updated_at,
	u.first_name, u.last_name`

func scanProfile(row interface{ Scan(...interface{}) error }) (*Profile, error) {
	var p Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.Profession, &p.Bio, pq.Array(&p.Skills),
		&p.HourlyRate, &p.Location, &p.ProfileImageURL, &p.IsVerified,
		&p.AverageRating, &p.TotalReviews, &p.CreatedAt, &p.UpdatedAt,
		&p.FirstName, &p.LastName,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new provider profile
func (r *Repository) Create(ctx context.Context, p *Profile) (*Profile, error) {
	query := `
		INSERT INTO provider_profiles (user_id, profession, bio, skills, hourly_rate, location, profile_image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		p.UserID, p.Profession, p.Bio, pq.Array(p.Skills),
		p.HourlyRate, p.Location, p.ProfileImageURL,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider profile: %w", err)
	}

	return p, nil
}

// GetByID retrieves a provider profile by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM provider_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1`

	p, err := scanProfile(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get provider profile: %w", err)
	}

	return p, nil
}

// GetByUserID retrieves a provider profile by the owning user's ID
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM provider_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1`

	p, err := scanProfile(r.db.QueryRowContext(ctx, query, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get provider profile: %w", err)
	}

	return p, nil
}

// List retrieves provider profiles matching the filter, with pagination
func (r *Repository) List(ctx context.Context, filter ListFilter, minRating *decimal.Decimal, limit, offset int) ([]*Profile, int, error) {
	where := `
		WHERE ($1::text IS NULL OR p.profession ILIKE '%' || $1 || '%')
		  AND ($2::text IS NULL OR p.location ILIKE '%' || $2 || '%')
		  AND ($3::numeric IS NULL OR p.average_rating >= $3)`

	var ratingArg interface{}
	if minRating != nil {
		ratingArg = minRating.String()
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM provider_profiles p` + where
	err := r.db.QueryRowContext(ctx, countQuery, filter.Profession, filter.Location, ratingArg).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count provider profiles: %w", err)
	}

	query := `
		SELECT ` + profileColumns + `
		FROM provider_profiles p
		JOIN users u ON u.id = p.user_id` + where + `
		ORDER BY p.average_rating DESC, p.id
		LIMIT $4 OFFSET $5`

	rows, err := r.db.QueryContext(ctx, query, filter.Profession, filter.Location, ratingArg, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list provider profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan provider profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	return profiles, total, rows.Err()
}

// Update modifies an existing provider profile
func (r *Repository) Update(ctx context.Context, id int64, req *UpdateProfileRequest, hourlyRate *decimal.Decimal) (*Profile, error) {
	var skillsArg interface{}
	if req.Skills != nil {
		skillsArg = pq.Array(req.Skills)
	}

	query := `
		UPDATE provider_profiles SET
			profession = COALESCE($2, profession),
			bio = COALESCE($3, bio),
			skills = COALESCE($4, skills),
			hourly_rate = COALESCE($5, hourly_rate),
			location = COALESCE($6, location),
			profile_image_url = COALESCE($7, profile_image_url),
			updated_at = NOW()
		WHERE id = $1`

	var rateArg interface{}
	if hourlyRate != nil {
		rateArg = hourlyRate.String()
	}

	result, err := r.db.ExecContext(ctx, query, id,
		req.Profession, req.Bio, skillsArg, rateArg, req.Location, req.ProfileImageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to update provider profile: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to update provider profile: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	return r.GetByID(ctx, id)
}

// Verify marks a provider profile as verified
func (r *Repository) Verify(ctx context.Context, id int64) (*Profile, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE provider_profiles SET is_verified = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to verify provider profile: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to verify provider profile: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	return r.GetByID(ctx, id)
}

// RefreshRating recomputes the rating aggregates for the provider owning
// the given user ID from the reviews table
func (r *Repository) RefreshRating(ctx context.Context, providerUserID int64) error {
	query := `
		UPDATE provider_profiles SET
			average_rating = COALESCE((SELECT AVG(rating) FROM reviews WHERE reviewee_id = $1), 0),
			total_reviews = (SELECT COUNT(*) FROM reviews WHERE reviewee_id = $1),
			updated_at = NOW()
		WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, providerUserID); err != nil {
		return fmt.Errorf("failed to refresh provider rating: %w", err)
	}

	return nil
}

// CreateAvailability inserts a new availability slot for a profile
func (r *Repository) CreateAvailability(ctx context.Context, a *Availability) (*Availability, error) {
	query := `
		INSERT INTO availabilities (profile_id, day_of_week, start_time, end_time, is_available)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		a.ProfileID, a.DayOfWeek, a.StartTime, a.EndTime, a.IsAvailable,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create availability: %w", err)
	}

	return a, nil
}

// ListAvailabilities retrieves all availability slots for a profile
func (r *Repository) ListAvailabilities(ctx context.Context, profileID int64) ([]*Availability, error) {
	query := `
		SELECT id, profile_id, day_of_week, start_time, end_time, is_available, created_at
		FROM availabilities
		WHERE profile_id = $1
		ORDER BY day_of_week, start_time`

	rows, err := r.db.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list availabilities: %w", err)
	}
	defer rows.Close()

	var slots []*Availability
	for rows.Next() {
		var a Availability
		err := rows.Scan(&a.ID, &a.ProfileID, &a.DayOfWeek, &a.StartTime, &a.EndTime, &a.IsAvailable, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan availability: %w", err)
		}
		slots = append(slots, &a)
	}

	return slots, rows.Err()
}

// DeleteAvailability removes an availability slot from a profile
func (r *Repository) DeleteAvailability(ctx context.Context, profileID, availabilityID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM availabilities WHERE id = $1 AND profile_id = $2`, availabilityID, profileID)
	if err != nil {
		return false, fmt.Errorf("failed to delete availability: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete availability: %w", err)
	}

	return affected > 0, nil
}
