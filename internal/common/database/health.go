// internal/common/database/health.go
package database

import (
	"context"
	"errors"
)

// Checker is a backend that can report whether it is reachable.
type Checker interface {
	Name() string
	Ping(ctx context.Context) error
}

// CheckAll pings every checker and joins the failures.
func CheckAll(ctx context.Context, checkers ...Checker) error {
	var errs []error
	for _, c := range checkers {
		if err := c.Ping(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
