package database_test

import (
	"context"
	"strings"
	"testing"

	"github.com/chainkit/ledger/foundation/ledger/database"
	"github.com/ethereum/go-ethereum/crypto"
)

var noEv = func(v string, args ...any) {}

// =============================================================================

func Test_GenesisReproducible(t *testing.T) {
	t.Log("Given the need for a canonical, reproducible genesis block.")
	{
		g1 := database.GenesisBlock()
		g2 := database.GenesisBlock()

		if g1.Header != g2.Header || g1.Hash != g2.Hash || len(g1.Trans) != len(g2.Trans) {
			t.Fatalf("\t%s\tShould construct field for field identical genesis blocks.", failed)
		}
		t.Logf("\t%s\tShould construct field for field identical genesis blocks.", success)

		if g1.Hash != g1.ComputeHash() {
			t.Fatalf("\t%s\tShould store a hash equal to its recomputation: %s", failed, g1.Hash)
		}
		t.Logf("\t%s\tShould store a hash equal to its recomputation.", success)
	}
}

func Test_POW(t *testing.T) {
	const difficulty = 1

	t.Log("Given the need to mine a block with a proof of work hash.")
	{
		genesis := database.GenesisBlock()
		trans := []database.BlockTx{database.NewBeneficiaryTx("0xF01813E4B85e178A83e29B8E7bF26BD830a25f32", 100)}

		block, err := database.POW(context.Background(), difficulty, genesis.Hash, trans, noEv)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to mine a block: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to mine a block.", success)

		if !strings.HasPrefix(block.Hash, strings.Repeat("0", difficulty)) {
			t.Fatalf("\t%s\tShould have %d leading zeros in the hash: %s", failed, difficulty, block.Hash)
		}
		t.Logf("\t%s\tShould have %d leading zeros in the hash.", success, difficulty)

		if block.Hash != block.ComputeHash() {
			t.Fatalf("\t%s\tShould store a hash equal to the recomputation for the final nonce.", failed)
		}
		t.Logf("\t%s\tShould store a hash equal to the recomputation for the final nonce.", success)

		if err := block.ValidateBlock(genesis, noEv); err != nil {
			t.Fatalf("\t%s\tShould validate against the genesis block: %v", failed, err)
		}
		t.Logf("\t%s\tShould validate against the genesis block.", success)
	}
}

func Test_POWCancel(t *testing.T) {
	t.Log("Given the need to cancel an in-flight mining run.")
	{
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		genesis := database.GenesisBlock()
		if _, err := database.POW(ctx, 16, genesis.Hash, nil, noEv); err == nil {
			t.Fatalf("\t%s\tShould return an error when the context is cancelled.", failed)
		}
		t.Logf("\t%s\tShould return an error when the context is cancelled.", success)
	}
}

func Test_TamperDetection(t *testing.T) {
	const difficulty = 1

	t.Log("Given the need to detect a mutated transaction inside a mined block.")
	{
		pk, err := crypto.HexToECDSA(fromHexKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the private key: %v", failed, err)
		}

		tx, err := database.NewTx(database.PublicKeyToAccountID(pk.PublicKey), "0xF01813E4B85e178A83e29B8E7bF26BD830a25f32", 100)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct a transaction: %v", failed, err)
		}
		signedTx, err := tx.Sign(pk)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to sign the transaction: %v", failed, err)
		}

		genesis := database.GenesisBlock()
		trans := []database.BlockTx{database.NewBlockTx(signedTx)}

		block, err := database.POW(context.Background(), difficulty, genesis.Hash, trans, noEv)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to mine a block: %v", failed, err)
		}
		if err := block.ValidateBlock(genesis, noEv); err != nil {
			t.Fatalf("\t%s\tShould validate before tampering: %v", failed, err)
		}
		t.Logf("\t%s\tShould validate before tampering.", success)

		block.Trans[0].Value = 1_000_000

		if err := block.ValidateBlock(genesis, noEv); err == nil {
			t.Fatalf("\t%s\tShould fail validation after mutating a transaction value.", failed)
		}
		t.Logf("\t%s\tShould fail validation after mutating a transaction value.", success)
	}
}
