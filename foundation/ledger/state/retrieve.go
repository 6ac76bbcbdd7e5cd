package state

import (
	"github.com/chainkit/ledger/foundation/ledger/database"
	"github.com/chainkit/ledger/foundation/ledger/genesis"
)

// RetrieveGenesis returns a copy of the chain parameters.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// RetrieveBeneficiaryID returns the account credited when this instance
// mines a block.
func (s *State) RetrieveBeneficiaryID() database.AccountID {
	return s.beneficiaryID
}

// RetrieveLatestBlock returns a copy of the current latest block.
func (s *State) RetrieveLatestBlock() database.Block {
	return s.db.LatestBlock()
}

// RetrieveChain returns a copy of the chain of blocks from genesis.
func (s *State) RetrieveChain() []database.Block {
	return s.db.CopyChain()
}

// RetrieveMempool returns a copy of the pending pool in admission order.
func (s *State) RetrieveMempool() []database.BlockTx {
	return s.mempool.PickAll()
}

// MempoolLength returns the current number of pending transactions.
func (s *State) MempoolLength() int {
	return s.mempool.Count()
}

// RetrieveBalance returns the committed balance for the specified account
// from the incrementally maintained table.
func (s *State) RetrieveBalance(accountID database.AccountID) uint64 {
	return s.db.Balance(accountID)
}

// ReplayBalance derives the balance for the specified account by replaying
// the entire chain. Agrees with RetrieveBalance on any valid chain.
func (s *State) ReplayBalance(accountID database.AccountID) uint64 {
	return s.db.ReplayBalance(accountID)
}

// RetrieveAccounts returns the known accounts sorted by account id.
func (s *State) RetrieveAccounts() []database.Account {
	return s.db.Accounts()
}

// RetrieveAccountTransactions collects every mined transaction touching the
// specified account in chain order.
func (s *State) RetrieveAccountTransactions(accountID database.AccountID) []database.BlockTx {
	return s.db.AccountTransactions(accountID)
}

// ValidateChain audits the whole chain against the ledger invariants. A nil
// error means the chain is valid.
func (s *State) ValidateChain() error {
	return s.db.ValidateChain()
}
