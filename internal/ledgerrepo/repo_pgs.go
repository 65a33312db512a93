// Package ledgerrepo implements the balance-mutating atomic units.
//
// Every operation runs as one database transaction: balance updates and the
// matching log entries either all commit or none do. Transient serialization
// and deadlock failures are retried from the read step on a fresh transaction.
package ledgerrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/coinkeep/ledger-core/internal/accountrepo"
	"github.com/coinkeep/ledger-core/internal/domain"
	"github.com/coinkeep/ledger-core/internal/txnrepo"
	"github.com/coinkeep/ledger-core/pkg/dbpkg"
	"github.com/coinkeep/ledger-core/pkg/errorspkg"
	"github.com/coinkeep/ledger-core/pkg/moneypkg"
)

// Transactions that fail with a transient error are re-executed from the read
// step up to maxTxAttempts times before reporting ErrUnavailable.
const maxTxAttempts = 3

// RepoPGS facilitates ledger repository layer logic.
type RepoPGS struct {
	conn *sql.DB
}

// NewRepoPGS returns ledger RepoPGS with a connection to start transactions.
func NewRepoPGS(conn *sql.DB) *RepoPGS {
	return &RepoPGS{conn: conn}
}

// CreateAccountTx creates the account and, for a positive initial balance,
// the deposit log entry describing it, in one atomic unit.
func (r *RepoPGS) CreateAccountTx(ctx context.Context, name, balance string) (domain.MutationTxResult, error) {
	var result domain.MutationTxResult

	err := r.execTx(ctx, func(tx *sql.Tx) error {
		accountRepo := accountrepo.NewRepoPGS(tx)
		txnRepo := txnrepo.NewRepoPGS(tx)

		account, err := accountRepo.Create(ctx, name, balance)
		if err != nil {
			return err
		}

		result.Account = account

		if !moneypkg.IsPositive(balance) {
			return nil
		}

		result.Transaction, err = txnRepo.Create(ctx, domain.CreateTransactionParams{
			AccountID:        account.ID,
			Type:             domain.TransactionDeposit,
			Amount:           balance,
			ResultingBalance: account.Balance,
		})

		return err
	})
	if err != nil {
		return domain.MutationTxResult{}, err
	}

	return result, nil
}

// DepositTx credits the account and appends the deposit log entry atomically.
func (r *RepoPGS) DepositTx(ctx context.Context, accountID int32, amount string) (domain.MutationTxResult, error) {
	return r.mutationTx(ctx, accountID, amount, domain.TransactionDeposit)
}

// WithdrawTx debits the account and appends the withdrawal log entry atomically.
//
// The accounts balance check constraint rejects a debit below zero, which
// surfaces as ErrInsufficientBalance and rolls the whole unit back.
func (r *RepoPGS) WithdrawTx(ctx context.Context, accountID int32, amount string) (domain.MutationTxResult, error) {
	return r.mutationTx(ctx, accountID, amount, domain.TransactionWithdrawal)
}

func (r *RepoPGS) mutationTx(ctx context.Context, accountID int32, amount string, txnType domain.TransactionType) (domain.MutationTxResult, error) {
	var result domain.MutationTxResult

	delta := amount
	if txnType == domain.TransactionWithdrawal {
		delta = "-" + amount
	}

	err := r.execTx(ctx, func(tx *sql.Tx) error {
		accountRepo := accountrepo.NewRepoPGS(tx)
		txnRepo := txnrepo.NewRepoPGS(tx)

		account, err := accountRepo.AddBalance(ctx, delta, accountID)
		if err != nil {
			return err
		}

		result.Account = account

		result.Transaction, err = txnRepo.Create(ctx, domain.CreateTransactionParams{
			AccountID:        account.ID,
			Type:             txnType,
			Amount:           amount,
			ResultingBalance: account.Balance,
		})

		return err
	})
	if err != nil {
		return domain.MutationTxResult{}, err
	}

	return result, nil
}

// TransferTx moves money between two accounts.
//
// It debits the source, credits the destination and appends the correlated
// transfer_out/transfer_in log entries within a single database transaction.
func (r *RepoPGS) TransferTx(ctx context.Context, arg domain.TransferParams) (domain.TransferTxResult, error) {
	var result domain.TransferTxResult

	err := r.execTx(ctx, func(tx *sql.Tx) error {
		accountRepo := accountrepo.NewRepoPGS(tx)
		txnRepo := txnrepo.NewRepoPGS(tx)

		var (
			fromAccount, toAccount domain.Account
			err                    error
		)

		// To avoid deadlocks execute statements in consistent id order
		if arg.FromAccountID < arg.ToAccountID {
			argAddBalance := addBalanceParams{
				account1ID: arg.FromAccountID,
				amount1:    "-" + arg.Amount,
				account2ID: arg.ToAccountID,
				amount2:    arg.Amount,
			}

			fromAccount, toAccount, err = addBalances(ctx, accountRepo, argAddBalance)
		} else {
			argAddBalance := addBalanceParams{
				account1ID: arg.ToAccountID,
				amount1:    arg.Amount,
				account2ID: arg.FromAccountID,
				amount2:    "-" + arg.Amount,
			}

			toAccount, fromAccount, err = addBalances(ctx, accountRepo, argAddBalance)
		}

		if err != nil {
			return err
		}

		result.FromAccount, result.ToAccount = fromAccount, toAccount

		transferID := uuid.NewString()

		result.FromTransaction, err = txnRepo.Create(ctx, domain.CreateTransactionParams{
			AccountID:        fromAccount.ID,
			Type:             domain.TransactionTransferOut,
			Amount:           arg.Amount,
			ResultingBalance: fromAccount.Balance,
			TransferID:       transferID,
		})
		if err != nil {
			return err
		}

		result.ToTransaction, err = txnRepo.Create(ctx, domain.CreateTransactionParams{
			AccountID:        toAccount.ID,
			Type:             domain.TransactionTransferIn,
			Amount:           arg.Amount,
			ResultingBalance: toAccount.Balance,
			TransferID:       transferID,
		})

		return err
	})
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	return result, nil
}

type addBalanceParams struct {
	account1ID int32
	amount1    string
	account2ID int32
	amount2    string
}

func addBalances(ctx context.Context, r *accountrepo.RepoPGS, arg addBalanceParams) (domain.Account, domain.Account, error) {
	account1, err := r.AddBalance(ctx, arg.amount1, arg.account1ID)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	account2, err := r.AddBalance(ctx, arg.amount2, arg.account2ID)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	return account1, account2, nil
}

// execTx runs fn inside a database transaction, retrying transient failures.
func (r *RepoPGS) execTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	l := zerolog.Ctx(ctx)

	var err error

	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = r.runTx(ctx, fn)
		if err == nil || !errors.Is(err, errorspkg.ErrUnavailable) {
			return err
		}

		l.Warn().Err(err).Int("attempt", attempt).Msg("retrying ledger transaction")
	}

	return errorspkg.ErrUnavailable
}

func (r *RepoPGS) runTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			l.Error().Err(rbErr).Send()
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()

		if dbpkg.IsRetryable(err) {
			return errorspkg.ErrUnavailable
		}

		return errorspkg.ErrInternal
	}

	return nil
}
