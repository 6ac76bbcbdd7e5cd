// Package genesis maintains access to the chain parameters file.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"
)

// Genesis represents the fixed parameters a ledger instance runs with. Unlike
// account balances, which only ever come from mined blocks, these values are
// configuration and never change for the life of the instance.
type Genesis struct {
	Name         string `json:"name"`          // Human readable name for this chain.
	Difficulty   uint   `json:"difficulty"`    // How many leading 0's are needed to solve the work problem.
	MiningReward uint64 `json:"mining_reward"` // Reward for mining a block.
}

// =============================================================================

// Load opens and consumes the genesis file.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, fmt.Errorf("reading genesis file: %w", err)
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, fmt.Errorf("parsing genesis file: %w", err)
	}

	return genesis, nil
}
