// Package helpers provides seeding helpers used in integration tests.
package helpers

import (
	"context"
	"database/sql"
	"testing"

	"github.com/coinkeep/ledger-core/internal/domain"
	"github.com/coinkeep/ledger-core/internal/ledgerrepo"
	"github.com/coinkeep/ledger-core/pkg/randompkg"
)

// SeedAccountWithBalance creates an account with the given opening balance
// directly through the repository layer.
func SeedAccountWithBalance(t *testing.T, db *sql.DB, balance string) domain.Account {
	t.Helper()

	ledgerRepo := ledgerrepo.NewRepoPGS(db)

	name := randompkg.Name()

	result, err := ledgerRepo.CreateAccountTx(context.Background(), name, balance)
	if err != nil {
		t.Fatalf("ledgerRepo.CreateAccountTx(context.Background(), %v, %v) returned error: %v",
			name, balance, err)
	}

	return result.Account
}

// SeedAccountWith1000Balance creates an account holding 1000.
func SeedAccountWith1000Balance(t *testing.T, db *sql.DB) domain.Account {
	t.Helper()

	return SeedAccountWithBalance(t, db, "1000")
}
