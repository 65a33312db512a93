package accountservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/coinkeep/ledger-core/internal/domain"
	"github.com/coinkeep/ledger-core/pkg/errorspkg"
	"github.com/coinkeep/ledger-core/pkg/randompkg"
)

func randomAccount(id int32, balance string) domain.Account {
	return domain.Account{
		ID:        id,
		Name:      randompkg.Name(),
		Balance:   balance,
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}

func TestCreate(t *testing.T) {
	testAccount := randomAccount(1, "100")

	type input struct {
		name           string
		initialBalance string
	}

	testCases := []struct {
		name          string
		input         input
		buildStubs    func(repo *MockRepo, ledger *MockLedgerRepo)
		checkResponse func(res domain.Account, err error)
	}{
		{
			name: "EmptyName",
			input: input{
				name:           "",
				initialBalance: "100",
			},
			buildStubs: func(repo *MockRepo, ledger *MockLedgerRepo) {
				ledger.EXPECT().CreateAccountTx(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidName.Error())
			},
		},
		{
			name: "InvalidBalance",
			input: input{
				name:           testAccount.Name,
				initialBalance: "!@#$",
			},
			buildStubs: func(repo *MockRepo, ledger *MockLedgerRepo) {
				ledger.EXPECT().CreateAccountTx(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidAmount.Error())
			},
		},
		{
			name: "NegativeBalance",
			input: input{
				name:           testAccount.Name,
				initialBalance: "-100",
			},
			buildStubs: func(repo *MockRepo, ledger *MockLedgerRepo) {
				ledger.EXPECT().CreateAccountTx(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrNegativeBalance.Error())
			},
		},
		{
			name: "RepoError",
			input: input{
				name:           testAccount.Name,
				initialBalance: "100",
			},
			buildStubs: func(repo *MockRepo, ledger *MockLedgerRepo) {
				ledger.EXPECT().
					CreateAccountTx(gomock.Any(), gomock.Eq(testAccount.Name), gomock.Eq("100")).
					Times(1).
					Return(domain.MutationTxResult{}, errorspkg.ErrInternal)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, errorspkg.ErrInternal.Error())
			},
		},
		{
			name: "OK",
			input: input{
				name:           testAccount.Name,
				initialBalance: "100",
			},
			buildStubs: func(repo *MockRepo, ledger *MockLedgerRepo) {
				ledger.EXPECT().
					CreateAccountTx(gomock.Any(), gomock.Eq(testAccount.Name), gomock.Eq("100")).
					Times(1).
					Return(domain.MutationTxResult{Account: testAccount}, nil)
			},
			checkResponse: func(res domain.Account, err error) {
				require.NoError(t, err)
				require.Equal(t, testAccount, res)
			},
		},
		{
			name: "OKZeroBalance",
			input: input{
				name:           testAccount.Name,
				initialBalance: "0",
			},
			buildStubs: func(repo *MockRepo, ledger *MockLedgerRepo) {
				ledger.EXPECT().
					CreateAccountTx(gomock.Any(), gomock.Eq(testAccount.Name), gomock.Eq("0")).
					Times(1).
					Return(domain.MutationTxResult{Account: testAccount}, nil)
			},
			checkResponse: func(res domain.Account, err error) {
				require.NoError(t, err)
				require.Equal(t, testAccount, res)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			ledger := NewMockLedgerRepo(ctrl)
			tc.buildStubs(repo, ledger)

			service := New(repo, ledger)

			res, err := service.Create(context.Background(), tc.input.name, tc.input.initialBalance)

			tc.checkResponse(res, err)
		})
	}
}

func TestGet(t *testing.T) {
	testAccount := randomAccount(1, "100")

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	ledger := NewMockLedgerRepo(ctrl)

	repo.EXPECT().
		Get(gomock.Any(), gomock.Eq(testAccount.ID)).
		Times(1).
		Return(testAccount, nil)

	service := New(repo, ledger)

	res, err := service.Get(context.Background(), testAccount.ID)
	require.NoError(t, err)
	require.Equal(t, testAccount, res)
}

func TestGetNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	ledger := NewMockLedgerRepo(ctrl)

	repo.EXPECT().
		Get(gomock.Any(), gomock.Eq(int32(404))).
		Times(1).
		Return(domain.Account{}, domain.ErrAccountNotFound)

	service := New(repo, ledger)

	res, err := service.Get(context.Background(), 404)
	require.EqualError(t, err, domain.ErrAccountNotFound.Error())
	require.Empty(t, res)
}

func TestList(t *testing.T) {
	testAccounts := []domain.Account{
		randomAccount(1, "100"),
		randomAccount(2, "200"),
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	ledger := NewMockLedgerRepo(ctrl)

	// pageSize 2, pageID 3 -> limit 2, offset 4
	repo.EXPECT().
		List(gomock.Any(), gomock.Eq(int32(2)), gomock.Eq(int32(4))).
		Times(1).
		Return(testAccounts, nil)

	service := New(repo, ledger)

	res, err := service.List(context.Background(), 2, 3)
	require.NoError(t, err)
	require.Equal(t, testAccounts, res)
}
