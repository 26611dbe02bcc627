// Package services holds the business logic between the HTTP handlers and
// GORM. Every exported method returns apperr errors; handlers never inspect
// driver errors themselves.
package services

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// Page describes one slice of a page-number paginated list.
type Page struct {
	Page  int
	Limit int
	Total int64
}

func (p Page) TotalPages() int64 {
	if p.Limit == 0 {
		return 0
	}
	return (p.Total + int64(p.Limit) - 1) / int64(p.Limit)
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
