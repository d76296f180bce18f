package database

import (
	"time"

	"github.com/lib/pq"
)

func nowForTest() time.Time {
	return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
}

func duplicateKeyError() error {
	return &pq.Error{Code: "23505"}
}
