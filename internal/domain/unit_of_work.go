package domain

import "context"

// UnitOfWork runs fn atomically: a scoring run's audit records are either
// fully persisted or not at all.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
