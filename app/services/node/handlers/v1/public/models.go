package public

import (
	"fmt"

	"github.com/chainkit/ledger/foundation/ledger/database"
	"github.com/chainkit/ledger/foundation/ledger/signature"
	"github.com/chainkit/ledger/foundation/nameservice"
)

// actBalance represents an account and its balance for the response.
type actBalance struct {
	Account database.AccountID `json:"account"`
	Name    string             `json:"name"`
	Balance uint64             `json:"balance"`
}

// tx represents a transaction view for the response.
type tx struct {
	FromAccount database.AccountID    `json:"from"`
	FromName    string                `json:"from_name"`
	To          database.AccountID    `json:"to"`
	ToName      string                `json:"to_name"`
	Value       uint64                `json:"value"`
	TimeStamp   uint64                `json:"timestamp"`
	Provenance  database.TxProvenance `json:"provenance"`
	Sig         string                `json:"sig,omitempty"`
}

// toTxView builds the response view for a mined or pending transaction.
func toTxView(tran database.BlockTx, ns *nameservice.NameService) tx {
	view := tx{
		FromAccount: tran.FromID,
		FromName:    ns.Lookup(tran.FromID),
		To:          tran.ToID,
		ToName:      ns.Lookup(tran.ToID),
		Value:       tran.Value,
		TimeStamp:   tran.TimeStamp,
		Provenance:  tran.Provenance,
	}

	if tran.Provenance == database.ProvenanceUser {
		view.Sig = tran.SignatureString()
	}

	return view
}

// =============================================================================

// submitTx is the payload a wallet submits for inclusion.
type submitTx struct {
	From      string `json:"from" validate:"required"`
	To        string `json:"to" validate:"required"`
	Value     uint64 `json:"value" validate:"required"`
	TimeStamp uint64 `json:"timestamp" validate:"required"`
	Sig       string `json:"sig" validate:"required"`
}

// toSignedTx converts the payload into the database transaction form.
func toSignedTx(app submitTx) (database.SignedTx, error) {
	fromID, err := database.ToAccountID(app.From)
	if err != nil {
		return database.SignedTx{}, fmt.Errorf("invalid from account: %w", err)
	}

	toID, err := database.ToAccountID(app.To)
	if err != nil {
		return database.SignedTx{}, fmt.Errorf("invalid to account: %w", err)
	}

	v, r, s, err := signature.ToVRSFromHexSignature(app.Sig)
	if err != nil {
		return database.SignedTx{}, fmt.Errorf("invalid signature encoding: %w", err)
	}

	signedTx := database.SignedTx{
		Tx: database.Tx{
			FromID:    fromID,
			ToID:      toID,
			Value:     app.Value,
			TimeStamp: app.TimeStamp,
		},
		V: v,
		R: r,
		S: s,
	}

	return signedTx, nil
}
