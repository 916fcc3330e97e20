package database

import (
	"context"

	"gorm.io/gorm"
)

type txContextKey struct{}

// TxManager runs a logical unit of work inside one database transaction.
// The transaction commits only when fn returns nil and rolls back entirely
// on error or panic, so partial writes are never visible
type TxManager struct {
	db *gorm.DB
}

// NewTxManager creates a new transaction manager
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// RunInTx executes fn within a transaction. The transaction handle travels in
// the context; repositories pick it up via FromContext so every repository
// call inside fn shares the same transaction
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
}

// FromContext returns the transaction bound to ctx, or fallback when the call
// is not running inside RunInTx
func FromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback
}
