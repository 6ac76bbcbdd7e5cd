package mempool_test

import (
	"testing"

	"github.com/chainkit/ledger/foundation/ledger/database"
	"github.com/chainkit/ledger/foundation/ledger/mempool"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func userTx(fromID database.AccountID, toID database.AccountID, value uint64) database.BlockTx {
	return database.NewBlockTx(database.SignedTx{
		Tx: database.Tx{
			FromID: fromID,
			ToID:   toID,
			Value:  value,
		},
	})
}

// =============================================================================

func Test_InsertionOrder(t *testing.T) {
	from := database.AccountID("0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4")
	to := database.AccountID("0xF01813E4B85e178A83e29B8E7bF26BD830a25f32")

	t.Log("Given the need to preserve admission order in the pool.")
	{
		mp := mempool.New()

		values := []uint64{10, 20, 30}
		for i, v := range values {
			if count := mp.Append(userTx(from, to, v)); count != i+1 {
				t.Fatalf("\t%s\tShould report the new pool size: got %d, exp %d", failed, count, i+1)
			}
		}
		t.Logf("\t%s\tShould report the new pool size on each append.", success)

		trans := mp.PickAll()
		if len(trans) != len(values) {
			t.Fatalf("\t%s\tShould return every pending transaction: got %d, exp %d", failed, len(trans), len(values))
		}
		for i, v := range values {
			if trans[i].Value != v {
				t.Fatalf("\t%s\tShould preserve admission order: got %d at %d, exp %d", failed, trans[i].Value, i, v)
			}
		}
		t.Logf("\t%s\tShould preserve admission order.", success)
	}
}

func Test_PendingDebit(t *testing.T) {
	from := database.AccountID("0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4")
	other := database.AccountID("0xFef311483Cc040e1A89fb9bb469eeB8A70935EF8")
	to := database.AccountID("0xF01813E4B85e178A83e29B8E7bF26BD830a25f32")

	t.Log("Given the need to total an account's committed pending spend.")
	{
		mp := mempool.New()
		mp.Append(userTx(from, to, 10))
		mp.Append(userTx(other, to, 99))
		mp.Append(userTx(from, to, 15))

		if debit := mp.PendingDebit(from); debit != 25 {
			t.Fatalf("\t%s\tShould total only the from account's spends: got %d, exp %d", failed, debit, 25)
		}
		t.Logf("\t%s\tShould total only the from account's spends.", success)

		if debit := mp.PendingDebit(to); debit != 0 {
			t.Fatalf("\t%s\tShould report zero for a receiving account: got %d", failed, debit)
		}
		t.Logf("\t%s\tShould report zero for a receiving account.", success)
	}
}

func Test_Truncate(t *testing.T) {
	from := database.AccountID("0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4")
	to := database.AccountID("0xF01813E4B85e178A83e29B8E7bF26BD830a25f32")

	t.Log("Given the need to clear the pool after a mining cycle.")
	{
		mp := mempool.New()
		mp.Append(userTx(from, to, 10))
		mp.Append(userTx(from, to, 20))

		mp.Truncate()

		if mp.Count() != 0 {
			t.Fatalf("\t%s\tShould have an empty pool after truncate: got %d", failed, mp.Count())
		}
		t.Logf("\t%s\tShould have an empty pool after truncate.", success)
	}
}
