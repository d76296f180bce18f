package database

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RefreshTokenRepository handles refresh token database operations. Tokens
// are stored as SHA-256 hashes; the raw token never touches the database.
type RefreshTokenRepository struct {
	db DB
}

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{
		db: db,
	}
}

func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// Store persists a refresh token hash together with session device metadata
func (r *RefreshTokenRepository) Store(userID uuid.UUID, token, deviceType, ipAddress, userAgent string, expiresAt time.Time) error {
	query := `
		INSERT INTO refresh_tokens (
			id, user_id, token_hash, device_type,
			ip_address, user_agent, expires_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	var deviceTypeVal, ipVal, userAgentVal interface{}
	if deviceType != "" {
		deviceTypeVal = deviceType
	}
	if ipAddress != "" {
		ipVal = ipAddress
	}
	if userAgent != "" {
		userAgentVal = userAgent
	}

	_, err := r.db.Exec(query, uuid.New(), userID, hashToken(token), deviceTypeVal, ipVal, userAgentVal, expiresAt, time.Now())
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	return nil
}

// IsActive reports whether the given token is stored for the user, unexpired
// and not revoked.
func (r *RefreshTokenRepository) IsActive(userID uuid.UUID, token string) (bool, error) {
	var count int

	query := `
		SELECT COUNT(*)
		FROM refresh_tokens
		WHERE user_id = $1
		  AND token_hash = $2
		  AND revoked_at IS NULL
		  AND expires_at > $3
	`

	err := r.db.QueryRow(query, userID, hashToken(token), time.Now()).Scan(&count)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to check refresh token: %w", err)
	}

	return count > 0, nil
}

// Revoke marks a single refresh token as revoked
func (r *RefreshTokenRepository) Revoke(userID uuid.UUID, token string) error {
	query := `
		UPDATE refresh_tokens
		SET revoked_at = $1
		WHERE user_id = $2
		  AND token_hash = $3
		  AND revoked_at IS NULL
	`

	_, err := r.db.Exec(query, time.Now(), userID, hashToken(token))
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}

// RevokeAllForUser revokes every active refresh token for a user (logout)
func (r *RefreshTokenRepository) RevokeAllForUser(userID uuid.UUID) error {
	query := `
		UPDATE refresh_tokens
		SET revoked_at = $1
		WHERE user_id = $2
		  AND revoked_at IS NULL
	`

	_, err := r.db.Exec(query, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}

	return nil
}
