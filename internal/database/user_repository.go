package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cityconnect/transit-backend/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ErrDuplicateEmail is returned when a signup collides with an existing email.
var ErrDuplicateEmail = errors.New("email is already registered")

// UserRepository handles user and profile database operations
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// CreateUserWithProfile creates the credential row and its dependent profile
// row in a single transaction, so a failed profile write cannot leave an
// orphaned credential behind.
func (r *UserRepository) CreateUserWithProfile(email, passwordHash, fullName, phone string, role models.Role) (*models.User, *models.Profile, error) {
	now := time.Now()

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	profile := &models.Profile{
		UserID:    user.ID,
		FullName:  fullName,
		Phone:     phone,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	userQuery := `
		INSERT INTO users (id, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := tx.Exec(userQuery, user.ID, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, nil, ErrDuplicateEmail
		}
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	profileQuery := `
		INSERT INTO profiles (user_id, full_name, phone, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if _, err := tx.Exec(profileQuery, profile.UserID, profile.FullName, profile.Phone, profile.Role, profile.CreatedAt, profile.UpdatedAt); err != nil {
		return nil, nil, fmt.Errorf("failed to create profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit signup transaction: %w", err)
	}

	return user, profile, nil
}

// GetUserByEmail retrieves a user by email. Returns nil without error when no
// such user exists.
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User

	query := `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	err := r.db.Get(&user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

// GetUserByID retrieves a user by ID. Returns nil without error when no such
// user exists.
func (r *UserRepository) GetUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User

	query := `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	err := r.db.Get(&user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return &user, nil
}

// GetProfileByUserID retrieves the profile row for a user. Returns nil without
// error when the profile does not exist.
func (r *UserRepository) GetProfileByUserID(userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile

	query := `
		SELECT user_id, full_name, phone, role, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	err := r.db.Get(&profile, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint error
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
