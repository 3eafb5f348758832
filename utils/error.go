package utils

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

var ErrorRecordNotFound = errors.New("record not found")

// ErrInvalidInput covers malformed requests that never reach the store:
// empty item lists, non-positive quantities, missing required fields.
var ErrInvalidInput = errors.New("invalid input")

// ErrConflict is returned when a concurrent-modification retry budget is
// exhausted. Row locks make this rare; it exists so callers can retry.
var ErrConflict = errors.New("conflicting concurrent modification")

// UnknownProductError marks an invoice line or stock command referencing a
// product that does not exist or is archived. The two cases are deliberately
// not distinguished to the caller.
type UnknownProductError struct {
	ProductId int
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("product %d not found or inactive", e.ProductId)
}

// InsufficientStockError carries the requested-vs-available context for the
// first failing line. The whole transaction is rolled back regardless.
type InsufficientStockError struct {
	ProductId   int
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (requested=%d, available=%d)",
		e.ProductName, e.Requested, e.Available)
}

// IsDuplicateEntry reports whether err is a MySQL unique-index violation
// (error 1062). Pre-insert uniqueness checks race under concurrency; the
// index is the authority and its violation still maps to a caller error.
func IsDuplicateEntry(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062
}

func IsUnknownProduct(err error) bool {
	var target *UnknownProductError
	return errors.As(err, &target)
}

func IsInsufficientStock(err error) bool {
	var target *InsufficientStockError
	return errors.As(err, &target)
}

func ErrorPanic(err error) {
	if err != nil {
		panic(err)
	}
}
