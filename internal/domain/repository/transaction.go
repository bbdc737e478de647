package repository

import "context"

// Transactor runs a unit of work atomically. Repositories called with the ctx
// passed to fn take part in the same transaction; when fn returns an error
// every change made through them is rolled back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
