package database

import (
	"context"
	"fmt"
	"time"

	"github.com/chainkit/ledger/foundation/ledger/signature"
)

// genesisTimeStamp is the fixed creation time of the genesis block. Nothing
// non-deterministic goes into the genesis block so every node reproduces it
// field for field, hash included.
const genesisTimeStamp uint64 = 1704067200 // 2024-01-01T00:00:00Z

// =============================================================================

// BlockHeader represents common information required for each block.
type BlockHeader struct {
	PrevBlockHash string `json:"prev_block_hash"` // Hash of the previous block in the chain.
	TimeStamp     uint64 `json:"timestamp"`       // Time the block was mined.
	Nonce         uint64 `json:"nonce"`           // Value identified to solve the hash solution.
	Difficulty    uint   `json:"difficulty"`      // Number of leading 0's needed to solve the hash solution.
}

// Block represents a group of transactions batched together with a proof
// of work hash. The transaction order is significant and part of the hash.
type Block struct {
	Header BlockHeader `json:"header"`
	Trans  []BlockTx   `json:"trans"`
	Hash   string      `json:"hash"`
}

// GenesisBlock constructs the canonical first block of the chain. Calling it
// twice yields field for field identical blocks.
func GenesisBlock() Block {
	b := Block{
		Header: BlockHeader{
			PrevBlockHash: signature.ZeroHash,
			TimeStamp:     genesisTimeStamp,
		},
		Trans: []BlockTx{},
	}
	b.Hash = b.ComputeHash()

	return b
}

// POW constructs a new Block and performs the work to find a nonce that
// solves the cryptographic POW puzzle.
func POW(ctx context.Context, difficulty uint, prevBlockHash string, trans []BlockTx, ev func(v string, args ...any)) (Block, error) {

	// Construct the block to be mined. The nonce starts at zero and is
	// incremented until the hash solution is found.
	nb := Block{
		Header: BlockHeader{
			PrevBlockHash: prevBlockHash,
			TimeStamp:     uint64(time.Now().UTC().Unix()),
			Nonce:         0,
			Difficulty:    difficulty,
		},
		Trans: trans,
	}

	// Perform the proof of work mining operation.
	if err := nb.performPOW(ctx, ev); err != nil {
		return Block{}, err
	}

	return nb, nil
}

// ComputeHash returns the content hash for the block's current field values.
// The stored Hash field is not part of the computation.
func (b Block) ComputeHash() string {
	data := struct {
		Header BlockHeader `json:"header"`
		Trans  []BlockTx   `json:"trans"`
	}{
		Header: b.Header,
		Trans:  b.Trans,
	}

	return signature.Hash(data)
}

// ValidateTransactions verifies every transaction in the block, failing on
// the first invalid transaction.
func (b Block) ValidateTransactions() error {
	for i, tx := range b.Trans {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("block tx[%d] %s: %w", i, tx, err)
		}
	}

	return nil
}

// ValidateBlock takes a block and validates it to be included into the chain
// after the specified previous block.
func (b Block) ValidateBlock(previousBlock Block, ev func(v string, args ...any)) error {
	ev("database: ValidateBlock: check: parent hash matches previous block [%s]", previousBlock.Hash)

	if b.Header.PrevBlockHash != previousBlock.Hash {
		return fmt.Errorf("parent block hash doesn't match previous block, got %s, exp %s", b.Header.PrevBlockHash, previousBlock.Hash)
	}

	ev("database: ValidateBlock: check: stored hash matches recomputation")

	hash := b.ComputeHash()
	if b.Hash != hash {
		return fmt.Errorf("stored block hash doesn't match recomputed content, got %s, exp %s", b.Hash, hash)
	}

	ev("database: ValidateBlock: check: block hash has been solved")

	if !isHashSolved(b.Header.Difficulty, b.Hash) {
		return fmt.Errorf("%s invalid block hash for difficulty %d", b.Hash, b.Header.Difficulty)
	}

	ev("database: ValidateBlock: check: block transactions are valid")

	if err := b.ValidateTransactions(); err != nil {
		return err
	}

	return nil
}

// =============================================================================

// performPOW does the work of mining to find a valid hash for a specified
// block. Pointer semantics are being used since a nonce is being discovered.
func (b *Block) performPOW(ctx context.Context, ev func(v string, args ...any)) error {
	ev("database: performPOW: MINING: started")
	defer ev("database: performPOW: MINING: completed")

	// Log the transactions that are a part of this potential block.
	for _, tx := range b.Trans {
		ev("database: performPOW: MINING: tx[%s]", tx)
	}

	// Loop until a solution is found or the mining run is cancelled.
	var attempts uint64
	for {
		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: performPOW: MINING: attempts[%d]", attempts)
		}

		// Did the caller cancel the mining run.
		if ctx.Err() != nil {
			ev("database: performPOW: MINING: CANCELLED")
			return ctx.Err()
		}

		// Hash the block and check if we have solved the puzzle.
		hash := b.ComputeHash()
		if !isHashSolved(b.Header.Difficulty, hash) {
			b.Header.Nonce++
			continue
		}

		ev("database: performPOW: MINING: SOLVED: prevBlk[%s]: newBlk[%s]", b.Header.PrevBlockHash, hash)
		ev("database: performPOW: MINING: attempts[%d]", attempts)

		b.Hash = hash

		return nil
	}
}

// isHashSolved checks the hash to make sure it complies with the POW rules.
// We need to match a difficulty number of leading 0's.
func isHashSolved(difficulty uint, hash string) bool {
	const match = "00000000000000000"

	if len(hash) != 64 {
		return false
	}

	return hash[:difficulty] == match[:difficulty]
}
