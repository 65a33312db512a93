// Package txnrepo manages repository layer of the append-only transaction log.
package txnrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/coinkeep/ledger-core/internal/domain"
	"github.com/coinkeep/ledger-core/pkg/dbpkg"
	"github.com/coinkeep/ledger-core/pkg/errorspkg"
)

// RepoPGS facilitates transaction log repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transaction log RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    transactions (account_id, type, amount, resulting_balance, transfer_id)
VALUES
    ($1, $2, $3, $4, $5)
RETURNING id, account_id, type, amount, resulting_balance, transfer_id, created_at
`

// Create appends the log entry and then returns it.
//
// Entries are only written as part of a balance-mutating atomic unit,
// never standalone.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	var transferID any
	if arg.TransferID != "" {
		transferID = arg.TransferID
	}

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.AccountID,
		arg.Type,
		arg.Amount,
		arg.ResultingBalance,
		transferID,
	)

	t, err := scanTransaction(row)
	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx, %+v)", arg)

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transactions_account_id_fkey":
				return t, domain.ErrAccountNotFound
			case "transactions_amount_check":
				return t, domain.ErrNegativeAmount
			}
		}

		if dbpkg.IsRetryable(err) {
			return t, errorspkg.ErrUnavailable
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const getQuery = `
SELECT id, account_id, type, amount, resulting_balance, transfer_id, created_at
FROM transactions
WHERE id = $1 LIMIT 1
`

// Get returns the log entry with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	t, err := scanTransaction(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return t, domain.ErrTransactionNotFound
		}

		l.Error().Err(err).Send()

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const listQuery = `
SELECT id, account_id, type, amount, resulting_balance, transfer_id, created_at
FROM transactions
WHERE account_id = $1
ORDER BY id
LIMIT $2 OFFSET $3
`

// List returns the account's log entries in commit order, oldest first.
func (r *RepoPGS) List(ctx context.Context, accountID int32, limit, offset int32) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, accountID, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var (
			t          domain.Transaction
			transferID sql.NullString
		)

		if err := rows.Scan(
			&t.ID,
			&t.AccountID,
			&t.Type,
			&t.Amount,
			&t.ResultingBalance,
			&transferID,
			&t.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		t.TransferID = transferID.String

		items = append(items, t)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

func scanTransaction(row *sql.Row) (domain.Transaction, error) {
	var (
		t          domain.Transaction
		transferID sql.NullString
	)

	err := row.Scan(
		&t.ID,
		&t.AccountID,
		&t.Type,
		&t.Amount,
		&t.ResultingBalance,
		&transferID,
		&t.CreatedAt,
	)
	if err != nil {
		return t, err
	}

	t.TransferID = transferID.String

	return t, nil
}
