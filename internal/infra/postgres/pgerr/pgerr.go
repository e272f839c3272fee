package infra_pgerr

import (
	"errors"

	"github.com/lib/pq"
)

const (
	uniqueViolation     pq.ErrorCode = "23505"
	foreignKeyViolation pq.ErrorCode = "23503"
)

func IsUniqueViolation(err error) bool {
	return hasCode(err, uniqueViolation)
}

func IsForeignKeyViolation(err error) bool {
	return hasCode(err, foreignKeyViolation)
}

func hasCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == code
	}
	return false
}
