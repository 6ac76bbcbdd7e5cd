// Package mempool maintains the pool of transactions admitted but not yet
// mined into a block.
package mempool

import (
	"sync"

	"github.com/chainkit/ledger/foundation/ledger/database"
)

// Mempool represents the insertion-ordered pool of pending transactions.
// Order is preserved from admission through block inclusion.
type Mempool struct {
	mu   sync.RWMutex
	pool []database.BlockTx
}

// New constructs a new mempool.
func New() *Mempool {
	return &Mempool{}
}

// Count returns the current number of transactions in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Append adds a transaction to the end of the pool and returns the new
// pool size.
func (mp *Mempool) Append(tx database.BlockTx) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = append(mp.pool, tx)

	return len(mp.pool)
}

// PickAll returns a copy of the pool in admission order.
func (mp *Mempool) PickAll() []database.BlockTx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	trans := make([]database.BlockTx, len(mp.pool))
	copy(trans, mp.pool)

	return trans
}

// PendingDebit reports the total value the specified account has committed
// to in the pool. Admission checks balances against committed funds minus
// this amount so two pending spends can't jointly overdraw.
func (mp *Mempool) PendingDebit(accountID database.AccountID) uint64 {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	var total uint64
	for _, tx := range mp.pool {
		if tx.FromID == accountID {
			total += tx.Value
		}
	}

	return total
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = nil
}
