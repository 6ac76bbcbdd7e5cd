package database_test

import (
	"context"
	"testing"

	"github.com/chainkit/ledger/foundation/ledger/database"
	"github.com/ethereum/go-ethereum/crypto"
)

func Test_ApplyBlock(t *testing.T) {
	const difficulty = 1
	const reward = 100

	miner := database.AccountID("0xFef311483Cc040e1A89fb9bb469eeB8A70935EF8")

	t.Log("Given the need to extend the chain one validated block at a time.")
	{
		db := database.New(noEv)

		if db.ChainLength() != 1 {
			t.Fatalf("\t%s\tShould start with the genesis block only: %d", failed, db.ChainLength())
		}
		t.Logf("\t%s\tShould start with the genesis block only.", success)

		trans := []database.BlockTx{database.NewBeneficiaryTx(miner, reward)}
		block, err := database.POW(context.Background(), difficulty, db.LatestBlock().Hash, trans, noEv)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to mine a block: %v", failed, err)
		}

		if err := db.ApplyBlock(block); err != nil {
			t.Fatalf("\t%s\tShould be able to apply the mined block: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to apply the mined block.", success)

		if db.ChainLength() != 2 || db.LatestBlock().Hash != block.Hash {
			t.Fatalf("\t%s\tShould have the mined block as the latest block.", failed)
		}
		t.Logf("\t%s\tShould have the mined block as the latest block.", success)

		if db.Balance(miner) != reward {
			t.Fatalf("\t%s\tShould credit the miner with the reward: got %d, exp %d", failed, db.Balance(miner), reward)
		}
		t.Logf("\t%s\tShould credit the miner with the reward.", success)

		if db.ReplayBalance(miner) != db.Balance(miner) {
			t.Fatalf("\t%s\tShould agree between replay and table balances.", failed)
		}
		t.Logf("\t%s\tShould agree between replay and table balances.", success)

		if err := db.ValidateChain(); err != nil {
			t.Fatalf("\t%s\tShould pass the whole chain audit: %v", failed, err)
		}
		t.Logf("\t%s\tShould pass the whole chain audit.", success)
	}
}

func Test_ApplyBlockBrokenLink(t *testing.T) {
	const difficulty = 1

	t.Log("Given the need to reject a block that doesn't link to the latest block.")
	{
		db := database.New(noEv)

		trans := []database.BlockTx{database.NewBeneficiaryTx("0xFef311483Cc040e1A89fb9bb469eeB8A70935EF8", 100)}
		block, err := database.POW(context.Background(), difficulty, "deadbeef", trans, noEv)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to mine a block: %v", failed, err)
		}

		if err := db.ApplyBlock(block); err == nil {
			t.Fatalf("\t%s\tShould reject a block with a broken parent link.", failed)
		}
		t.Logf("\t%s\tShould reject a block with a broken parent link.", success)

		if db.ChainLength() != 1 {
			t.Fatalf("\t%s\tShould leave the chain untouched: %d", failed, db.ChainLength())
		}
		t.Logf("\t%s\tShould leave the chain untouched.", success)
	}
}

func Test_AccountTransactions(t *testing.T) {
	const difficulty = 1
	const reward = 100

	t.Log("Given the need to collect every mined transaction for an account.")
	{
		pk, err := crypto.HexToECDSA(fromHexKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the private key: %v", failed, err)
		}
		fromID := database.PublicKeyToAccountID(pk.PublicKey)
		toID := database.AccountID("0xF01813E4B85e178A83e29B8E7bF26BD830a25f32")

		db := database.New(noEv)

		// First cycle funds the from account with the mining reward.
		block, err := database.POW(context.Background(), difficulty, db.LatestBlock().Hash, []database.BlockTx{database.NewBeneficiaryTx(fromID, reward)}, noEv)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to mine the funding block: %v", failed, err)
		}
		if err := db.ApplyBlock(block); err != nil {
			t.Fatalf("\t%s\tShould be able to apply the funding block: %v", failed, err)
		}

		// Second cycle spends part of it.
		tx, err := database.NewTx(fromID, toID, 40)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct a transaction: %v", failed, err)
		}
		signedTx, err := tx.Sign(pk)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to sign the transaction: %v", failed, err)
		}

		trans := []database.BlockTx{database.NewBlockTx(signedTx), database.NewBeneficiaryTx(fromID, reward)}
		block, err = database.POW(context.Background(), difficulty, db.LatestBlock().Hash, trans, noEv)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to mine the spending block: %v", failed, err)
		}
		if err := db.ApplyBlock(block); err != nil {
			t.Fatalf("\t%s\tShould be able to apply the spending block: %v", failed, err)
		}

		fromTrans := db.AccountTransactions(fromID)
		if len(fromTrans) != 3 {
			t.Fatalf("\t%s\tShould collect all transactions touching the from account: got %d, exp %d", failed, len(fromTrans), 3)
		}
		t.Logf("\t%s\tShould collect all transactions touching the from account.", success)

		toTrans := db.AccountTransactions(toID)
		if len(toTrans) != 1 || toTrans[0].Value != 40 {
			t.Fatalf("\t%s\tShould collect the single transaction touching the to account.", failed)
		}
		t.Logf("\t%s\tShould collect the single transaction touching the to account.", success)

		if db.Balance(fromID) != 160 || db.Balance(toID) != 40 {
			t.Fatalf("\t%s\tShould settle the balances: from %d, to %d", failed, db.Balance(fromID), db.Balance(toID))
		}
		t.Logf("\t%s\tShould settle the balances.", success)
	}
}
