package state

import (
	"context"
	"fmt"

	"github.com/chainkit/ledger/foundation/ledger/database"
)

// MineNewBlock seals the current pending pool plus the mining reward into a
// block, performs the proof of work and appends the result to the chain.
// The pool is cleared unconditionally afterwards: a transaction gets at most
// one inclusion attempt per mining cycle.
func (s *State) MineNewBlock(ctx context.Context, beneficiaryID database.AccountID) (database.Block, error) {
	s.evHandler("state: MineNewBlock: MINING: started")
	defer s.evHandler("state: MineNewBlock: MINING: completed")

	if !beneficiaryID.IsAccountID() {
		return database.Block{}, fmt.Errorf("beneficiary account is not properly formatted")
	}

	// Snapshot the pool and append the reward transaction. The reward is
	// the only transaction that creates new value.
	trans := s.mempool.PickAll()
	trans = append(trans, database.NewBeneficiaryTx(beneficiaryID, s.genesis.MiningReward))

	// Attempt to solve the POW puzzle outside the state mutex. This can
	// be cancelled.
	block, err := database.POW(ctx, s.genesis.Difficulty, s.db.LatestBlock().Hash, trans, s.evHandler)
	if err != nil {
		return database.Block{}, err
	}

	// Just check one more time we were not cancelled.
	if ctx.Err() != nil {
		return database.Block{}, ctx.Err()
	}

	// Only the chain append holds the lock.
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: MineNewBlock: MINING: update local state")

	if err := s.db.ApplyBlock(block); err != nil {
		return database.Block{}, err
	}

	s.mempool.Truncate()

	return block, nil
}
