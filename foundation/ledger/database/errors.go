package database

import "errors"

// Failure classes reported to callers. Each admission and validation rule
// maps to exactly one of these so callers can perform errors.Is checks.
var (
	// ErrNotAuthorized is returned when signing is attempted with a key
	// whose derived account does not match the declared from account.
	ErrNotAuthorized = errors.New("signing key does not match the from account")

	// ErrMissingSignature is returned when validating a user transaction
	// that was never signed.
	ErrMissingSignature = errors.New("transaction has no signature")

	// ErrMalformedTx is returned when a transaction is missing a properly
	// formatted from or to account.
	ErrMalformedTx = errors.New("transaction is missing a from or to account")

	// ErrInvalidSignature is returned when a transaction's signature does
	// not verify against its content.
	ErrInvalidSignature = errors.New("transaction signature is invalid")

	// ErrNonPositiveAmount is returned when admitting a transaction whose
	// value is zero.
	ErrNonPositiveAmount = errors.New("transaction value must be greater than zero")

	// ErrInsufficientBalance is returned when the from account's balance
	// can't cover the transaction value.
	ErrInsufficientBalance = errors.New("from account balance is below the transaction value")
)
