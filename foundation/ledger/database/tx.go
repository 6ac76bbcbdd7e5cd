package database

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"time"

	"github.com/chainkit/ledger/foundation/ledger/signature"
)

// TxProvenance identifies how a transaction entered a block. Beneficiary
// transactions are issued by the mining step itself and never pass through
// the admission pipeline, so the two origins are tagged explicitly rather
// than inferred from an absent from account.
type TxProvenance string

// The set of transaction provenances.
const (
	ProvenanceUser        TxProvenance = "user"
	ProvenanceBeneficiary TxProvenance = "beneficiary"
)

// =============================================================================

// Tx is the transactional information between two parties.
type Tx struct {
	FromID    AccountID `json:"from"`      // Account sending the value.
	ToID      AccountID `json:"to"`        // Account receiving the value.
	Value     uint64    `json:"value"`     // Monetary value transferred.
	TimeStamp uint64    `json:"timestamp"` // Time the transaction was created.
}

// NewTx constructs a new transaction stamped with the current time.
func NewTx(fromID AccountID, toID AccountID, value uint64) (Tx, error) {
	if !fromID.IsAccountID() {
		return Tx{}, fmt.Errorf("from account is not properly formatted: %w", ErrMalformedTx)
	}

	if !toID.IsAccountID() {
		return Tx{}, fmt.Errorf("to account is not properly formatted: %w", ErrMalformedTx)
	}

	tx := Tx{
		FromID:    fromID,
		ToID:      toID,
		Value:     value,
		TimeStamp: uint64(time.Now().UTC().Unix()),
	}

	return tx, nil
}

// Hash returns the content hash for the transaction. The digest is a pure
// function of the current field values.
func (tx Tx) Hash() string {
	return signature.Hash(tx)
}

// Sign uses the specified private key to sign the transaction. The key must
// derive the transaction's declared from account.
func (tx Tx) Sign(privateKey *ecdsa.PrivateKey) (SignedTx, error) {

	// Only the owner of the from account is allowed to sign.
	if PublicKeyToAccountID(privateKey.PublicKey) != tx.FromID {
		return SignedTx{}, ErrNotAuthorized
	}

	// Sign the transaction content to produce a signature.
	v, r, s, err := signature.Sign(tx, privateKey)
	if err != nil {
		return SignedTx{}, err
	}

	// Construct the signed transaction by adding the signature
	// in the [R|S|V] format.
	signedTx := SignedTx{
		Tx: tx,
		V:  v,
		R:  r,
		S:  s,
	}

	return signedTx, nil
}

// =============================================================================

// SignedTx is a signed version of the transaction. This is how clients like
// a wallet provide transactions for inclusion into the ledger.
type SignedTx struct {
	Tx
	V *big.Int `json:"v"` // Recovery identifier, either 31 or 32 with chainKitID.
	R *big.Int `json:"r"` // First coordinate of the ECDSA signature.
	S *big.Int `json:"s"` // Second coordinate of the ECDSA signature.
}

// Validate verifies the transaction has a proper signature that conforms to
// our standards and was produced over the transaction's current content by
// the declared from account.
func (tx SignedTx) Validate() error {
	if !tx.FromID.IsAccountID() || !tx.ToID.IsAccountID() {
		return ErrMalformedTx
	}

	if tx.V == nil || tx.R == nil || tx.S == nil {
		return ErrMissingSignature
	}

	if err := signature.VerifySignature(tx.V, tx.R, tx.S); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSignature, err)
	}

	// Recover the signing account from the content and the signature. Any
	// mutation of the content after signing recovers a different account.
	address, err := signature.FromAddress(tx.Tx, tx.V, tx.R, tx.S)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSignature, err)
	}

	if AccountID(address) != tx.FromID {
		return fmt.Errorf("%w: signer %s does not match from account %s", ErrInvalidSignature, address, tx.FromID)
	}

	return nil
}

// SignatureString returns the signature as a string.
func (tx SignedTx) SignatureString() string {
	return signature.SignatureString(tx.V, tx.R, tx.S)
}

// String implements the fmt.Stringer interface for logging.
func (tx SignedTx) String() string {
	return fmt.Sprintf("%s:%s:%d", tx.FromID, tx.ToID, tx.Value)
}

// =============================================================================

// BlockTx represents the transaction as it's recorded inside a block,
// tagged with its provenance.
type BlockTx struct {
	SignedTx
	Provenance TxProvenance `json:"provenance"`
}

// NewBlockTx constructs a block transaction for a user submitted transaction.
func NewBlockTx(signedTx SignedTx) BlockTx {
	return BlockTx{
		SignedTx:   signedTx,
		Provenance: ProvenanceUser,
	}
}

// NewBeneficiaryTx constructs the transaction that credits the mining reward.
// It carries no from account and no signature; value is created, not moved.
func NewBeneficiaryTx(toID AccountID, value uint64) BlockTx {
	return BlockTx{
		SignedTx: SignedTx{
			Tx: Tx{
				ToID:      toID,
				Value:     value,
				TimeStamp: uint64(time.Now().UTC().Unix()),
			},
		},
		Provenance: ProvenanceBeneficiary,
	}
}

// Validate verifies the transaction based on its provenance. Beneficiary
// transactions are valid by construction as long as they stay senderless.
func (tx BlockTx) Validate() error {
	if tx.Provenance == ProvenanceBeneficiary {
		if tx.FromID != "" {
			return fmt.Errorf("beneficiary transaction carries a from account: %w", ErrMalformedTx)
		}
		return nil
	}

	return tx.SignedTx.Validate()
}
