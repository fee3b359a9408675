package wallet

import "errors"

var (
	// ErrDuplicateEntry is returned when a ledger entry is appended twice
	// for the same (player_id, reference_id, kind), protecting bet/win
	// postings keyed by spin_id from double-application
	ErrDuplicateEntry = errors.New("wallet ledger entry already recorded for this reference")

	// ErrInsufficientBalance is returned when a debit would drive
	// balance_after negative
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidAmount is returned when an entry's amount is invalid for
	// its kind (e.g. a non-positive bet debit or a negative win credit)
	ErrInvalidAmount = errors.New("invalid ledger entry amount")
)
