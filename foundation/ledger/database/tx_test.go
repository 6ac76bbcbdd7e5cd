package database_test

import (
	"errors"
	"testing"

	"github.com/chainkit/ledger/foundation/ledger/database"
	"github.com/ethereum/go-ethereum/crypto"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

const (
	fromHexKey  = "fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959"
	otherHexKey = "8dc79feefd3b86e2f9991def0e5ccd9a5128e104682407b308594bc1032ac7f0"
)

// =============================================================================

func Test_SignAndValidate(t *testing.T) {
	t.Log("Given the need to sign and validate transactions.")
	{
		pk, err := crypto.HexToECDSA(fromHexKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the private key: %v", failed, err)
		}
		fromID := database.PublicKeyToAccountID(pk.PublicKey)
		toID := database.AccountID("0xF01813E4B85e178A83e29B8E7bF26BD830a25f32")

		tx, err := database.NewTx(fromID, toID, 100)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct a transaction: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to construct a transaction.", success)

		signedTx, err := tx.Sign(pk)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to sign the transaction: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to sign the transaction.", success)

		if err := signedTx.Validate(); err != nil {
			t.Fatalf("\t%s\tShould be able to validate the signed transaction: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to validate the signed transaction.", success)

		h1 := tx.Hash()
		h2 := tx.Hash()
		if h1 != h2 || len(h1) != 64 {
			t.Fatalf("\t%s\tShould get a stable 64 character content hash: %s", failed, h1)
		}
		t.Logf("\t%s\tShould get a stable 64 character content hash.", success)
	}
}

func Test_SignNotAuthorized(t *testing.T) {
	t.Log("Given the need to reject signing with a key that doesn't own the from account.")
	{
		pk, err := crypto.HexToECDSA(fromHexKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the private key: %v", failed, err)
		}
		otherPK, err := crypto.HexToECDSA(otherHexKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the other private key: %v", failed, err)
		}

		tx, err := database.NewTx(database.PublicKeyToAccountID(pk.PublicKey), "0xF01813E4B85e178A83e29B8E7bF26BD830a25f32", 100)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct a transaction: %v", failed, err)
		}

		if _, err := tx.Sign(otherPK); !errors.Is(err, database.ErrNotAuthorized) {
			t.Fatalf("\t%s\tShould get ErrNotAuthorized signing with the wrong key: %v", failed, err)
		}
		t.Logf("\t%s\tShould get ErrNotAuthorized signing with the wrong key.", success)
	}
}

func Test_ValidateMissingSignature(t *testing.T) {
	t.Log("Given the need to reject unsigned user transactions.")
	{
		pk, err := crypto.HexToECDSA(fromHexKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the private key: %v", failed, err)
		}

		tx, err := database.NewTx(database.PublicKeyToAccountID(pk.PublicKey), "0xF01813E4B85e178A83e29B8E7bF26BD830a25f32", 100)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct a transaction: %v", failed, err)
		}

		signedTx := database.SignedTx{Tx: tx}
		if err := signedTx.Validate(); !errors.Is(err, database.ErrMissingSignature) {
			t.Fatalf("\t%s\tShould get ErrMissingSignature for an unsigned transaction: %v", failed, err)
		}
		t.Logf("\t%s\tShould get ErrMissingSignature for an unsigned transaction.", success)
	}
}

func Test_ValidateTamperedContent(t *testing.T) {
	t.Log("Given the need to reject a transaction mutated after signing.")
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

		signedTx.Value = 1_000_000

		if err := signedTx.Validate(); !errors.Is(err, database.ErrInvalidSignature) {
			t.Fatalf("\t%s\tShould get ErrInvalidSignature for mutated content: %v", failed, err)
		}
		t.Logf("\t%s\tShould get ErrInvalidSignature for mutated content.", success)
	}
}

func Test_BeneficiaryTx(t *testing.T) {
	t.Log("Given the need to validate beneficiary transactions by provenance.")
	{
		tx := database.NewBeneficiaryTx("0xF01813E4B85e178A83e29B8E7bF26BD830a25f32", 100)

		if tx.Provenance != database.ProvenanceBeneficiary {
			t.Fatalf("\t%s\tShould carry the beneficiary provenance: %s", failed, tx.Provenance)
		}
		t.Logf("\t%s\tShould carry the beneficiary provenance.", success)

		if err := tx.Validate(); err != nil {
			t.Fatalf("\t%s\tShould be valid without a signature: %v", failed, err)
		}
		t.Logf("\t%s\tShould be valid without a signature.", success)

		tx.FromID = "0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4"
		if err := tx.Validate(); !errors.Is(err, database.ErrMalformedTx) {
			t.Fatalf("\t%s\tShould reject a beneficiary transaction with a from account: %v", failed, err)
		}
		t.Logf("\t%s\tShould reject a beneficiary transaction with a from account.", success)
	}
}
