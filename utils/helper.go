package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/go-playground/validator/v10"
	"github.com/mmdatafocus/shoptrack_backend/config"
)

func NewTrue() *bool {
	b := true
	return &b
}

func NewFalse() *bool {
	b := false
	return &b
}

func ProcessValidationErrors(err error) map[string]string {
	validationErrors := err.(validator.ValidationErrors)

	errorResponse := make(map[string]string)

	for _, ve := range validationErrors {
		errorResponse[ve.Field()] = ve.Tag()
	}

	return errorResponse
}

func UniqueSlice[T comparable](slice []T) []T {
	seen := make(map[T]struct{}, len(slice))
	result := make([]T, 0, len(slice))
	for _, v := range slice {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

func DereferencePtr[T any](ptr *T, defaults ...T) T {
	if ptr != nil {
		return *ptr
	}
	var def T
	if len(defaults) > 0 {
		def = defaults[0]
	}
	return def
}

// TruncateToDay drops the time-of-day component in t's location.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StockLock obtains a short redis lock keyed by product id around stock
// read-check-write sequences and returns its release func.
//
// Best-effort optimization only: correctness does not depend on Redis. The
// authoritative serialization is the SELECT .. FOR UPDATE row lock taken
// inside the DB transaction; this lock just reduces in-database lock
// contention when many cashiers hammer the same product.
func StockLock(ctx context.Context, productId int, moduleName string, functionName string) (release func(), err error) {
	logger := config.GetLogger()
	locker := config.GetRedisLock()
	noop := func() {}
	if locker == nil {
		return noop, nil
	}
	lockKey := fmt.Sprintf("stockLock:%d", productId)
	lock, err := locker.Obtain(ctx, lockKey, 30*time.Second, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		// Another writer holds it; the row lock will serialize us anyway.
		return noop, nil
	} else if err != nil {
		config.LogError(logger, moduleName, functionName, "Error obtaining stock lock", productId, err)
		return noop, nil
	}
	return func() {
		_ = lock.Release(ctx)
	}, nil
}
