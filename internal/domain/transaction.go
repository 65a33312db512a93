package domain

import (
	"errors"
	"time"
)

var (
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrInvalidAmount indicates invalid amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNegativeAmount indicates a zero or negative amount.
	ErrNegativeAmount = errors.New("amount must be positive")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrSameAccount indicates a transfer where both endpoints are the same account.
	ErrSameAccount = errors.New("cannot transfer to the same account")
)

// TransactionType distinguishes the balance-changing operations.
type TransactionType string

// All transaction types written to the log.
const (
	TransactionDeposit     TransactionType = "deposit"
	TransactionWithdrawal  TransactionType = "withdrawal"
	TransactionTransferOut TransactionType = "transfer_out"
	TransactionTransferIn  TransactionType = "transfer_in"
)

// Transaction is one immutable entry of an account's append-only log.
//
// Amount is always positive; Type carries the direction. ResultingBalance is
// the account balance captured in the same atomic commit that applied it, so
// replaying the log from the initial balance reproduces the current balance.
type Transaction struct {
	ID               int64           `json:"id"`
	AccountID        int32           `json:"account_id"`
	Type             TransactionType `json:"type"`
	Amount           string          `json:"amount"`
	ResultingBalance string          `json:"resulting_balance"`
	TransferID       string          `json:"transfer_id,omitempty"` // shared by the out/in pair of a transfer
	CreatedAt        time.Time       `json:"created_at"`
}

// CreateTransactionParams is the input data to append a log entry.
type CreateTransactionParams struct {
	AccountID        int32
	Type             TransactionType
	Amount           string
	ResultingBalance string
	TransferID       string
}

// MutationTxResult is the result of a single-account atomic mutation.
type MutationTxResult struct {
	Account     Account     `json:"account"`
	Transaction Transaction `json:"transaction"`
}

// TransferParams is the input data for the transfer transaction.
type TransferParams struct {
	FromAccountID int32  `json:"from_account_id"`
	ToAccountID   int32  `json:"to_account_id"`
	Amount        string `json:"amount"`
}

// TransferTxResult is the result of the transfer transaction.
type TransferTxResult struct {
	FromAccount     Account     `json:"from_account"`
	ToAccount       Account     `json:"to_account"`
	FromTransaction Transaction `json:"from_transaction"`
	ToTransaction   Transaction `json:"to_transaction"`
}
