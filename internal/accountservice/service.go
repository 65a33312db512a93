// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/coinkeep/ledger-core/internal/domain"
	"github.com/coinkeep/ledger-core/pkg/moneypkg"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Get(ctx context.Context, id int32) (domain.Account, error)
	List(ctx context.Context, limit, offset int32) ([]domain.Account, error)
}

// LedgerRepo provides the atomic account creation needed by account service layer.
type LedgerRepo interface {
	CreateAccountTx(ctx context.Context, name, balance string) (domain.MutationTxResult, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo   Repo
	ledger LedgerRepo
}

// New returns account service struct to manage account business logic.
func New(ar Repo, lr LedgerRepo) *Service {
	return &Service{repo: ar, ledger: lr}
}

// Create creates and returns an account with the given name and initial balance.
//
// A positive initial balance is recorded as the account's first deposit log
// entry so that replaying the log always reproduces the balance.
func (s *Service) Create(ctx context.Context, name, initialBalance string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if name == "" {
		return domain.Account{}, domain.ErrInvalidName
	}

	if _, err := moneypkg.Parse(initialBalance); err != nil {
		l.Info().Err(err).Send()
		return domain.Account{}, domain.ErrInvalidAmount
	}

	if !moneypkg.IsNonNegative(initialBalance) {
		return domain.Account{}, domain.ErrNegativeBalance
	}

	result, err := s.ledger.CreateAccountTx(ctx, name, initialBalance)
	if err != nil {
		return domain.Account{}, err
	}

	return result.Account, nil
}

// Get returns account for the given account ID.
func (s *Service) Get(ctx context.Context, id int32) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return account, err
	}

	return account, nil
}

// List returns the requested page of accounts.
func (s *Service) List(ctx context.Context, pageSize, pageID int32) ([]domain.Account, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	accounts, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	return accounts, err
}
