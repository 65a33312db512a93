// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrFromAccountNotFound indicates that the source account of a transfer is not found.
	ErrFromAccountNotFound = errors.New("from account not found")
	// ErrToAccountNotFound indicates that the destination account of a transfer is not found.
	ErrToAccountNotFound = errors.New("to account not found")
	// ErrInvalidName indicates that the account name is empty.
	ErrInvalidName = errors.New("account name must not be empty")
	// ErrNegativeBalance indicates that the initial balance is negative.
	ErrNegativeBalance = errors.New("initial balance must not be negative")
)

// Account holds balance data for a single named account.
type Account struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateAccountParams is the input data to create an account.
type CreateAccountParams struct {
	Name           string `json:"name"`
	InitialBalance string `json:"initial_balance"`
}
