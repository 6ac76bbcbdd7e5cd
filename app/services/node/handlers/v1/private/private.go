// Package private maintains the group of handlers for node administration.
package private

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/chainkit/ledger/business/web/errs"
	"github.com/chainkit/ledger/foundation/ledger/database"
	"github.com/chainkit/ledger/foundation/ledger/state"
	"github.com/chainkit/ledger/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of private endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
}

// Status returns the current status of the node.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	latest := h.State.RetrieveLatestBlock()

	status := struct {
		LatestBlockHash string             `json:"latest_block_hash"`
		Blocks          int                `json:"blocks"`
		Mempool         int                `json:"mempool"`
		Beneficiary     database.AccountID `json:"beneficiary"`
	}{
		LatestBlockHash: latest.Hash,
		Blocks:          len(h.State.RetrieveChain()),
		Mempool:         h.State.MempoolLength(),
		Beneficiary:     h.State.RetrieveBeneficiaryID(),
	}

	return web.Respond(ctx, w, status, http.StatusOK)
}

// Audit runs the whole chain validation and reports the result.
func (h Handlers) Audit(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := struct {
		Valid bool   `json:"valid"`
		Error string `json:"error,omitempty"`
	}{
		Valid: true,
	}

	if err := h.State.ValidateChain(); err != nil {
		resp.Valid = false
		resp.Error = err.Error()
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// BlocksByNumber returns the blocks in the chain for the specified range.
// Indexes are positions in the chain, genesis being 0; "latest" selects the
// last block.
func (h Handlers) BlocksByNumber(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	fromStr := web.Param(r, "from")
	toStr := web.Param(r, "to")

	chain := h.State.RetrieveChain()

	from, err := blockIndex(fromStr, len(chain))
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}
	to, err := blockIndex(toStr, len(chain))
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if from > to || to >= len(chain) {
		return web.Respond(ctx, w, []database.Block{}, http.StatusOK)
	}

	return web.Respond(ctx, w, chain[from:to+1], http.StatusOK)
}

// blockIndex parses a chain position, accepting the literal "latest".
func blockIndex(s string, chainLength int) (int, error) {
	if s == "latest" {
		return chainLength - 1, nil
	}

	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		return 0, fmt.Errorf("block index can't be negative: %d", i)
	}

	return i, nil
}
