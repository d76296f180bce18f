package handlers

import "github.com/lib/pq"

func duplicateKeyError() error {
	return &pq.Error{Code: "23505"}
}
