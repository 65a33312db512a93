package txnservice

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/coinkeep/ledger-core/internal/domain"
	"github.com/coinkeep/ledger-core/pkg/errorspkg"
)

func TestList(t *testing.T) {
	testTxns := []domain.Transaction{
		{ID: 1, AccountID: 1, Type: domain.TransactionDeposit, Amount: "100", ResultingBalance: "100"},
		{ID: 2, AccountID: 1, Type: domain.TransactionWithdrawal, Amount: "40", ResultingBalance: "60"},
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)

	// pageSize 10, pageID 2 -> limit 10, offset 10
	repo.EXPECT().
		List(gomock.Any(), gomock.Eq(int32(1)), gomock.Eq(int32(10)), gomock.Eq(int32(10))).
		Times(1).
		Return(testTxns, nil)

	service := New(repo)

	res, err := service.List(context.Background(), 1, 10, 2)
	require.NoError(t, err)
	require.Equal(t, testTxns, res)
}

func TestListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)

	repo.EXPECT().
		List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Times(1).
		Return(nil, errorspkg.ErrInternal)

	service := New(repo)

	res, err := service.List(context.Background(), 1, 10, 1)
	require.EqualError(t, err, errorspkg.ErrInternal.Error())
	require.Empty(t, res)
}
