// Package repokit binds repositories to a store seam or an open transaction
package repokit

import (
	"context"

	"newsfeed/internal/platform/store"
)

// Queryer is the minimal read and write surface for SQL repos
type Queryer = store.RowQuerier

// TxRunner can execute a function inside a transaction
type TxRunner = store.TxRunner

// Binder is a tiny factory that binds a domain repo to a specific Queryer
type Binder[T any] interface {
	Bind(Queryer) T
}

// MustBind panics on a nil Queryer, then binds
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: nil Queryer")
	}
	return b.Bind(q)
}

// WithTxBound runs fn inside a transaction with a repo bound to the tx Queryer
// an error from fn rolls the transaction back
func WithTxBound[T any](ctx context.Context, tx TxRunner, b Binder[T], fn func(r T) error) error {
	return tx.Tx(ctx, func(q Queryer) error {
		return fn(MustBind(b, q))
	})
}
