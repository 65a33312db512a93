// Package txnservice manages business logic layer of transaction log reads.
package txnservice

import (
	"context"

	"github.com/coinkeep/ledger-core/internal/domain"
)

// Repo provides data access layer interface needed by transaction log service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package txnservice
type Repo interface {
	List(ctx context.Context, accountID int32, limit, offset int32) ([]domain.Transaction, error)
}

// Service facilitates transaction log service layer logic.
type Service struct {
	repo Repo
}

// New returns transaction log service struct.
func New(tr Repo) *Service {
	return &Service{repo: tr}
}

// List returns the requested page of the account's log entries, oldest first.
func (s *Service) List(ctx context.Context, accountID, pageSize, pageID int32) ([]domain.Transaction, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	transactions, err := s.repo.List(ctx, accountID, limit, offset)
	if err != nil {
		return nil, err
	}

	return transactions, nil
}
