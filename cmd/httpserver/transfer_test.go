//go:build integration

package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/coinkeep/ledger-core/internal/domain"
	"github.com/coinkeep/ledger-core/internal/integrationtest"
	"github.com/coinkeep/ledger-core/internal/integrationtest/helpers"
	"github.com/coinkeep/ledger-core/pkg/web"
)

func TestTransferAPI(t *testing.T) {
	server := integrationtest.SetupServer(t)

	account1 := helpers.SeedAccountWith1000Balance(t, server.DB)
	account2 := helpers.SeedAccountWith1000Balance(t, server.DB)
	amount := "100"

	type requestBody struct {
		FromAccountID int32  `json:"from_account_id"`
		ToAccountID   int32  `json:"to_account_id"`
		Amount        string `json:"amount"`
	}

	type transferData struct {
		FromAccount     domain.Account     `json:"from_account"`
		ToAccount       domain.Account     `json:"to_account"`
		FromTransaction domain.Transaction `json:"from_transaction"`
		ToTransaction   domain.Transaction `json:"to_transaction"`
	}

	testCases := []struct {
		name           string
		requestBody    requestBody
		wantStatusCode int
		checkData      func(req requestBody, data any)
		wantError      string
	}{
		{
			name: "OK",
			requestBody: requestBody{
				FromAccountID: account1.ID,
				ToAccountID:   account2.ID,
				Amount:        amount,
			},
			wantStatusCode: http.StatusOK,
			checkData: func(req requestBody, data any) {
				got, ok := data.(*transferData)
				if !ok {
					t.Errorf(`res.Data=%#v, failed type conversion`, data)
				}

				wantFrom := domain.Account{
					ID:        account1.ID,
					Name:      account1.Name,
					Balance:   "900",
					CreatedAt: account1.CreatedAt,
				}
				wantTo := domain.Account{
					ID:        account2.ID,
					Name:      account2.Name,
					Balance:   "1100",
					CreatedAt: account2.CreatedAt,
				}

				compareCreatedAt := cmpopts.EquateApproxTime(time.Second)
				if diff := cmp.Diff(wantFrom, got.FromAccount, compareCreatedAt); diff != "" {
					t.Errorf("from account mismatch (-want +got):\n%s", diff)
				}
				if diff := cmp.Diff(wantTo, got.ToAccount, compareCreatedAt); diff != "" {
					t.Errorf("to account mismatch (-want +got):\n%s", diff)
				}

				if got.FromTransaction.Type != domain.TransactionTransferOut {
					t.Errorf("FromTransaction.Type=%v, want %v",
						got.FromTransaction.Type, domain.TransactionTransferOut)
				}
				if got.ToTransaction.Type != domain.TransactionTransferIn {
					t.Errorf("ToTransaction.Type=%v, want %v",
						got.ToTransaction.Type, domain.TransactionTransferIn)
				}

				if got.FromTransaction.ResultingBalance != "900" {
					t.Errorf("FromTransaction.ResultingBalance=%v, want 900",
						got.FromTransaction.ResultingBalance)
				}
				if got.ToTransaction.ResultingBalance != "1100" {
					t.Errorf("ToTransaction.ResultingBalance=%v, want 1100",
						got.ToTransaction.ResultingBalance)
				}

				if got.FromTransaction.TransferID == "" {
					t.Error("FromTransaction.TransferID is not set")
				}
				if got.FromTransaction.TransferID != got.ToTransaction.TransferID {
					t.Errorf("transfer IDs differ: %v != %v",
						got.FromTransaction.TransferID, got.ToTransaction.TransferID)
				}
			},
		},
		{
			name: "RequiredFromAccountID",
			requestBody: requestBody{
				ToAccountID: account2.ID,
				Amount:      amount,
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "FromAccountID is required",
		},
		{
			name: "RequiredAmount",
			requestBody: requestBody{
				FromAccountID: account1.ID,
				ToAccountID:   account2.ID,
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Amount is required",
		},
		{
			name: "SameAccount",
			requestBody: requestBody{
				FromAccountID: account1.ID,
				ToAccountID:   account1.ID,
				Amount:        amount,
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrSameAccount.Error(),
		},
		{
			name: "InsufficientBalance",
			requestBody: requestBody{
				FromAccountID: account1.ID,
				ToAccountID:   account2.ID,
				Amount:        "100000",
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      domain.ErrInsufficientBalance.Error(),
		},
		{
			name: "FromAccountNotFound",
			requestBody: requestBody{
				FromAccountID: account1.ID + 10_000,
				ToAccountID:   account2.ID,
				Amount:        amount,
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrFromAccountNotFound.Error(),
		},
		{
			name: "ToAccountNotFound",
			requestBody: requestBody{
				FromAccountID: account1.ID,
				ToAccountID:   account2.ID + 10_000,
				Amount:        amount,
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrToAccountNotFound.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			body, err := json.Marshal(tc.requestBody)
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			req, err := http.NewRequest(http.MethodPost, "/transfers", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			w := httptest.NewRecorder()
			server.ServeHTTP(w, req)

			if got := w.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := web.Response{
				Data: &transferData{},
			}

			if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
				t.Errorf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusOK {
				if res.Error != tc.wantError {
					t.Errorf(`res.Error=%q, want %q`, res.Error, tc.wantError)
				}
			} else {
				tc.checkData(tc.requestBody, res.Data)
			}
		})
	}
}
