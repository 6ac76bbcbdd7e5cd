// Package public maintains the group of handlers for public node access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/chainkit/ledger/business/web/errs"
	"github.com/chainkit/ledger/foundation/events"
	"github.com/chainkit/ledger/foundation/ledger/database"
	"github.com/chainkit/ledger/foundation/ledger/state"
	"github.com/chainkit/ledger/foundation/nameservice"
	"github.com/chainkit/ledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of public endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	NS    *nameservice.NameService
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide ledger events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// SubmitWalletTransaction adds a new user transaction to the pending pool.
func (h Handlers) SubmitWalletTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var app submitTx
	if err := web.Decode(r, &app); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	signedTx, err := toSignedTx(app)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("add user tran", "traceid", v.TraceID, "from", signedTx.FromID, "to", signedTx.ToID, "value", signedTx.Value)

	if err := h.State.SubmitWalletTransaction(signedTx); err != nil {
		switch {
		case errors.Is(err, database.ErrMalformedTx),
			errors.Is(err, database.ErrMissingSignature),
			errors.Is(err, database.ErrInvalidSignature),
			errors.Is(err, database.ErrNonPositiveAmount),
			errors.Is(err, database.ErrInsufficientBalance):
			return errs.NewTrusted(err, http.StatusBadRequest)
		default:
			return err
		}
	}

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "transaction added to pending pool",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Genesis returns the chain parameters.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.State.RetrieveGenesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// Accounts returns the current account balances. If an account is specified
// in the route, only that balance is returned.
func (h Handlers) Accounts(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	accountStr := web.Param(r, "account")

	var accounts []database.Account
	switch accountStr {
	case "":
		accounts = h.State.RetrieveAccounts()

	default:
		accountID, err := database.ToAccountID(accountStr)
		if err != nil {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
		accounts = []database.Account{{AccountID: accountID, Balance: h.State.RetrieveBalance(accountID)}}
	}

	resp := make([]actBalance, len(accounts))
	for i, account := range accounts {
		resp[i] = actBalance{
			Account: account.AccountID,
			Name:    h.NS.Lookup(account.AccountID),
			Balance: account.Balance,
		}
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// AccountTransactions returns every mined transaction for an account in
// chain order.
func (h Handlers) AccountTransactions(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	accountID, err := database.ToAccountID(web.Param(r, "account"))
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	trans := h.State.RetrieveAccountTransactions(accountID)

	resp := make([]tx, len(trans))
	for i, tran := range trans {
		resp[i] = toTxView(tran, h.NS)
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Mempool returns the set of uncommitted transactions in admission order.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	trans := h.State.RetrieveMempool()

	resp := make([]tx, len(trans))
	for i, tran := range trans {
		resp[i] = toTxView(tran, h.NS)
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SignalMining signals the background worker to start a mining cycle.
func (h Handlers) SignalMining(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	h.State.Worker.SignalStartMining()

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "mining signaled",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
