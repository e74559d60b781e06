package memory

import "context"

// TxManager serializes round mutations with the store's write lock. The
// ctx marker lets repo calls inside the tx skip re-locking.
type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	return fn(withTx(ctx))
}
