// Package ledgerservice manages business logic layer of balance mutations.
package ledgerservice

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/coinkeep/ledger-core/internal/accountdelivery"
	"github.com/coinkeep/ledger-core/internal/domain"
	"github.com/coinkeep/ledger-core/pkg/moneypkg"
)

// Repo provides data access layer interface needed by ledger service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package ledgerservice
type Repo interface {
	DepositTx(ctx context.Context, accountID int32, amount string) (domain.MutationTxResult, error)
	WithdrawTx(ctx context.Context, accountID int32, amount string) (domain.MutationTxResult, error)
	TransferTx(ctx context.Context, arg domain.TransferParams) (domain.TransferTxResult, error)
}

// Service facilitates ledger service layer logic.
type Service struct {
	repo           Repo
	accountService accountdelivery.Service
}

// New returns ledger service struct to manage balance mutation business logic.
func New(lr Repo, as accountdelivery.Service) *Service {
	return &Service{
		repo:           lr,
		accountService: as,
	}
}

// Deposit credits the account and returns the updated account with its log entry.
func (s *Service) Deposit(ctx context.Context, accountID int32, amount string) (domain.MutationTxResult, error) {
	if _, err := parsePositive(ctx, amount); err != nil {
		return domain.MutationTxResult{}, err
	}

	return s.repo.DepositTx(ctx, accountID, amount)
}

// Withdraw debits the account and returns the updated account with its log entry.
func (s *Service) Withdraw(ctx context.Context, accountID int32, amount string) (domain.MutationTxResult, error) {
	amountDecimal, err := parsePositive(ctx, amount)
	if err != nil {
		return domain.MutationTxResult{}, err
	}

	if err := s.checkBalance(ctx, accountID, amountDecimal); err != nil {
		return domain.MutationTxResult{}, err
	}

	return s.repo.WithdrawTx(ctx, accountID, amount)
}

// Transfer checks if the transfer request is valid and then executes it.
func (s *Service) Transfer(ctx context.Context, arg domain.TransferParams) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := parsePositive(ctx, arg.Amount)
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	if arg.FromAccountID == arg.ToAccountID {
		return domain.TransferTxResult{}, domain.ErrSameAccount
	}

	if err := s.checkBalance(ctx, arg.FromAccountID, amountDecimal); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.TransferTxResult{}, domain.ErrFromAccountNotFound
		}

		return domain.TransferTxResult{}, err
	}

	if _, err := s.accountService.Get(ctx, arg.ToAccountID); err != nil {
		l.Info().Err(err).Send()

		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.TransferTxResult{}, domain.ErrToAccountNotFound
		}

		return domain.TransferTxResult{}, err
	}

	return s.repo.TransferTx(ctx, arg)
}

// checkBalance verifies that the account exists and holds at least amount.
//
// The check is advisory: the balance constraint inside the atomic unit is the
// authority under concurrent mutations.
func (s *Service) checkBalance(ctx context.Context, accountID int32, amount decimal.Decimal) error {
	l := zerolog.Ctx(ctx)

	account, err := s.accountService.Get(ctx, accountID)
	if err != nil {
		l.Info().Err(err).Send()
		return err
	}

	balance, err := moneypkg.Parse(account.Balance)
	if err != nil {
		l.Error().Err(err).Send()
		return err
	}

	if balance.LessThan(amount) {
		return domain.ErrInsufficientBalance
	}

	return nil
}

func parsePositive(ctx context.Context, amount string) (decimal.Decimal, error) {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := moneypkg.Parse(amount)
	if err != nil {
		l.Info().Err(err).Send()
		return decimal.Decimal{}, domain.ErrInvalidAmount
	}

	if amountDecimal.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, domain.ErrNegativeAmount
	}

	return amountDecimal, nil
}
