// Package database manages the append-only chain of blocks and the in-memory
// account balances derived from it.
package database

import (
	"fmt"
	"sort"
	"sync"
)

// Database manages the chain of blocks and the accounts who have transacted
// on the ledger. The chain always starts with the canonical genesis block
// and only ever grows by one validated block at a time. Balances are
// maintained incrementally as blocks are applied so queries don't require
// a chain replay.
type Database struct {
	mu        sync.RWMutex
	chain     []Block
	accounts  map[AccountID]Account
	evHandler func(v string, args ...any)
}

// New constructs a new database initialized with the genesis block.
func New(evHandler func(v string, args ...any)) *Database {
	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	genesis := GenesisBlock()

	db := Database{
		chain:     []Block{genesis},
		accounts:  make(map[AccountID]Account),
		evHandler: ev,
	}

	ev("database: New: chain initialized: genesis[%s]", genesis.Hash)

	return &db
}

// LatestBlock returns the current last block of the chain.
func (db *Database) LatestBlock() Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.chain[len(db.chain)-1]
}

// ChainLength returns the number of blocks in the chain, genesis included.
func (db *Database) ChainLength() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return len(db.chain)
}

// ApplyBlock validates the block against the current latest block and, if it
// passes, appends it to the chain and applies its transactions to the
// account balances. The block is accepted or rejected as a unit.
func (db *Database) ApplyBlock(block Block) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := block.ValidateBlock(db.chain[len(db.chain)-1], db.evHandler); err != nil {
		return err
	}

	// Apply the transactions to a copy of the accounts so a failure part
	// way through doesn't leave balances half updated.
	accounts := copyAccounts(db.accounts)
	for _, tx := range block.Trans {
		if err := applyTransaction(accounts, tx); err != nil {
			return err
		}
	}

	db.chain = append(db.chain, block)
	db.accounts = accounts

	db.evHandler("database: ApplyBlock: chain extended: blocks[%d]: latest[%s]", len(db.chain), block.Hash)

	return nil
}

// Balance returns the committed balance for the specified account.
func (db *Database) Balance(accountID AccountID) uint64 {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.accounts[accountID].Balance
}

// CopyAccounts makes a copy of the current accounts in the database.
func (db *Database) CopyAccounts() map[AccountID]Account {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return copyAccounts(db.accounts)
}

// Accounts returns the current accounts sorted by account id.
func (db *Database) Accounts() []Account {
	db.mu.RLock()

	accounts := make([]Account, 0, len(db.accounts))
	for _, account := range db.accounts {
		accounts = append(accounts, account)
	}

	db.mu.RUnlock()

	sort.Sort(byAccount(accounts))

	return accounts
}

// CopyChain returns a copy of the chain of blocks starting with genesis.
func (db *Database) CopyChain() []Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	chain := make([]Block, len(db.chain))
	copy(chain, db.chain)

	return chain
}

// ReplayBalance derives the balance for the specified account by replaying
// the entire chain from genesis. This is the audit path; Balance serves the
// same number from the incrementally maintained table.
func (db *Database) ReplayBalance(accountID AccountID) uint64 {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var balance uint64
	for _, block := range db.chain {
		for _, tx := range block.Trans {
			if tx.FromID == accountID && tx.Provenance == ProvenanceUser {
				balance -= tx.Value
			}
			if tx.ToID == accountID {
				balance += tx.Value
			}
		}
	}

	return balance
}

// AccountTransactions collects every mined transaction that touches the
// specified account, in chain order then within-block order.
func (db *Database) AccountTransactions(accountID AccountID) []BlockTx {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var trans []BlockTx
	for _, block := range db.chain {
		for _, tx := range block.Trans {
			if tx.FromID == accountID || tx.ToID == accountID {
				trans = append(trans, tx)
			}
		}
	}

	return trans
}

// ValidateChain audits the whole chain. The stored genesis block must equal
// the canonical genesis block, every link and hash must hold, every
// transaction must be valid and the account table must match a full replay.
// Any violation fails the audit; there is no partial repair.
func (db *Database) ValidateChain() error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	db.evHandler("database: ValidateChain: audit: blocks[%d]", len(db.chain))

	// The first block must be the canonical genesis block, field for field.
	genesis := GenesisBlock()
	stored := db.chain[0]
	if stored.Header != genesis.Header || len(stored.Trans) != 0 || stored.Hash != genesis.Hash || stored.ComputeHash() != genesis.Hash {
		return fmt.Errorf("genesis block doesn't match the canonical genesis block, got %s, exp %s", stored.Hash, genesis.Hash)
	}

	// Validate each subsequent block against its parent and replay the
	// balances as we go.
	accounts := make(map[AccountID]Account)
	for i := 1; i < len(db.chain); i++ {
		block := db.chain[i]

		if err := block.ValidateBlock(db.chain[i-1], db.evHandler); err != nil {
			return fmt.Errorf("block[%d]: %w", i, err)
		}

		for _, tx := range block.Trans {
			if err := applyTransaction(accounts, tx); err != nil {
				return fmt.Errorf("block[%d]: %w", i, err)
			}
		}
	}

	// The incrementally maintained table must agree with the replay.
	for accountID, account := range db.accounts {
		if accounts[accountID].Balance != account.Balance {
			return fmt.Errorf("account %s balance table disagrees with chain replay, got %d, exp %d", accountID, account.Balance, accounts[accountID].Balance)
		}
	}

	return nil
}

// =============================================================================

// applyTransaction performs the accounting for a single mined transaction.
func applyTransaction(accounts map[AccountID]Account, tx BlockTx) error {

	// A beneficiary transaction creates new value for the to account.
	if tx.Provenance == ProvenanceBeneficiary {
		to, exists := accounts[tx.ToID]
		if !exists {
			to = newAccount(tx.ToID, 0)
		}
		to.Balance += tx.Value
		accounts[tx.ToID] = to

		return nil
	}

	from, exists := accounts[tx.FromID]
	if !exists {
		from = newAccount(tx.FromID, 0)
	}

	if from.Balance < tx.Value {
		return fmt.Errorf("applying tx %s: %w", tx, ErrInsufficientBalance)
	}

	to, exists := accounts[tx.ToID]
	if !exists {
		to = newAccount(tx.ToID, 0)
	}

	from.Balance -= tx.Value
	to.Balance += tx.Value

	accounts[tx.FromID] = from
	accounts[tx.ToID] = to

	return nil
}

// copyAccounts makes a deep copy of the accounts map.
func copyAccounts(accounts map[AccountID]Account) map[AccountID]Account {
	cpy := make(map[AccountID]Account, len(accounts))
	for accountID, account := range accounts {
		cpy[accountID] = account
	}

	return cpy
}
