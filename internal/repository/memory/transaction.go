package memory

import (
	"context"
	"sync"

	"inkwell/internal/domain/repositories"
)

// TransactionManager is an in-memory stand-in for the postgres
// transaction manager. It serializes transactions behind a mutex so
// concurrent test writes cannot interleave, but it cannot roll back:
// the memory repositories apply writes immediately. Service tests that
// assert partial-failure behavior do so against the error surface, not
// against rollback.
type TransactionManager struct {
	mu sync.Mutex
}

// NewTransactionManager creates a new in-memory transaction manager
func NewTransactionManager() repositories.TransactionManager {
	return &TransactionManager{}
}

func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	return fn(ctx)
}
