// Package state is the core API for the ledger and implements all the
// business rules and processing.
package state

import (
	"fmt"
	"sync"

	"github.com/chainkit/ledger/foundation/ledger/database"
	"github.com/chainkit/ledger/foundation/ledger/genesis"
	"github.com/chainkit/ledger/foundation/ledger/mempool"
)

// EventHandler defines a function that is called when events
// occur in the processing of blocks and transactions.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for background mining.
type Worker interface {
	Shutdown()
	SignalStartMining()
	SignalCancelMining()
}

// =============================================================================

// Config represents the configuration required to start a ledger instance.
// Difficulty and mining reward are per-instance values so independent
// ledgers can run side by side.
type Config struct {
	BeneficiaryID database.AccountID
	Genesis       genesis.Genesis
	EvHandler     EventHandler
}

// State manages the ledger: the chain of blocks, the derived account
// balances, and the pool of pending transactions. The mutex serializes all
// state mutating operations; mining itself runs against a snapshot outside
// the lock and only the chain append re-acquires it.
type State struct {
	mu sync.Mutex

	beneficiaryID database.AccountID
	evHandler     EventHandler

	genesis genesis.Genesis
	mempool *mempool.Mempool
	db      *database.Database

	Worker Worker
}

// New constructs a new ledger instance for data management.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	if !cfg.BeneficiaryID.IsAccountID() {
		return nil, fmt.Errorf("beneficiary account is not properly formatted")
	}

	// Access the database, which initializes the chain with the
	// genesis block.
	db := database.New(ev)

	state := State{
		beneficiaryID: cfg.BeneficiaryID,
		evHandler:     ev,

		genesis: cfg.Genesis,
		mempool: mempool.New(),
		db:      db,
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the ledger down.
func (s *State) Shutdown() error {

	// Stop all block writing activity.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}
