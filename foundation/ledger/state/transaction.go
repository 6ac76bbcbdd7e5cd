package state

import (
	"github.com/chainkit/ledger/foundation/ledger/database"
)

// SubmitWalletTransaction accepts a signed transaction from a wallet for
// inclusion into the next block and signals the miner.
func (s *State) SubmitWalletTransaction(signedTx database.SignedTx) error {
	s.evHandler("state: SubmitWalletTransaction: tx[%s]", signedTx)

	if err := s.admitTransaction(signedTx); err != nil {
		return err
	}

	if s.Worker != nil {
		s.Worker.SignalStartMining()
	}

	return nil
}

// admitTransaction runs the admission pipeline under the state mutex so the
// balance view stays consistent across concurrent submissions. Each failed
// check reports its own error class.
func (s *State) admitTransaction(signedTx database.SignedTx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A transaction without both accounts never gets in. Beneficiary
	// transactions are injected by the mining step and don't pass
	// through here.
	if !signedTx.FromID.IsAccountID() || !signedTx.ToID.IsAccountID() {
		return database.ErrMalformedTx
	}

	// Reports ErrMissingSignature or ErrInvalidSignature.
	if err := signedTx.Validate(); err != nil {
		return err
	}

	if signedTx.Value == 0 {
		return database.ErrNonPositiveAmount
	}

	// The from account must cover this value on top of everything it has
	// already committed to in the pool.
	committed := s.db.Balance(signedTx.FromID)
	pending := s.mempool.PendingDebit(signedTx.FromID)
	if committed < pending || committed-pending < signedTx.Value {
		return database.ErrInsufficientBalance
	}

	count := s.mempool.Append(database.NewBlockTx(signedTx))
	s.evHandler("state: admitTransaction: admitted: pool[%d]", count)

	return nil
}
