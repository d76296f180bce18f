package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	ticketPrefix       = "TKT"
	ticketSuffixLength = 6
	ticketSuffixChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GenerateTicketNumber builds a ticket identifier of the form
// TKT-<unix milliseconds>-<6 random uppercase alphanumerics>.
// Uniqueness is probabilistic: two bookings in the same millisecond collide
// only if they also draw the same 6-character suffix.
func GenerateTicketNumber(now time.Time) (string, error) {
	suffix := make([]byte, ticketSuffixLength)
	max := big.NewInt(int64(len(ticketSuffixChars)))

	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate ticket suffix: %w", err)
		}
		suffix[i] = ticketSuffixChars[n.Int64()]
	}

	return fmt.Sprintf("%s-%d-%s", ticketPrefix, now.UnixMilli(), string(suffix)), nil
}
