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
	"github.com/coinkeep/ledger-core/pkg/randompkg"
	"github.com/coinkeep/ledger-core/pkg/web"
)

func TestCreateAccountAPI(t *testing.T) {
	server := integrationtest.SetupServer(t)

	name := randompkg.Name()

	type requestBody struct {
		Name           string `json:"name"`
		InitialBalance string `json:"initial_balance"`
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
				Name:           name,
				InitialBalance: "1000",
			},
			wantStatusCode: http.StatusOK,
			checkData: func(req requestBody, data any) {
				got, ok := data.(*struct {
					Account domain.Account `json:"account"`
				})
				if !ok {
					t.Errorf(`res.Data=%#v, failed type conversion`, data)
				}

				want := domain.Account{
					Name:      req.Name,
					Balance:   "1000",
					CreatedAt: time.Now().UTC().Truncate(time.Second),
				}

				ignoreAccountID := cmpopts.IgnoreFields(domain.Account{}, "ID")
				compareCreatedAt := cmpopts.EquateApproxTime(time.Second)

				if diff := cmp.Diff(want, got.Account, ignoreAccountID, compareCreatedAt); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}

				if got.Account.ID == 0 {
					t.Error("Account.ID is not set")
				}
			},
		},
		{
			name: "RequiredName",
			requestBody: requestBody{
				InitialBalance: "1000",
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Name is required",
		},
		{
			name: "RequiredInitialBalance",
			requestBody: requestBody{
				Name: name,
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "InitialBalance is required",
		},
		{
			name: "NegativeInitialBalance",
			requestBody: requestBody{
				Name:           name,
				InitialBalance: "-1",
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrNegativeBalance.Error(),
		},
		{
			name: "InvalidInitialBalance",
			requestBody: requestBody{
				Name:           name,
				InitialBalance: "one hundred",
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrInvalidAmount.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			body, err := json.Marshal(tc.requestBody)
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			req, err := http.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			w := httptest.NewRecorder()
			server.ServeHTTP(w, req)

			if got := w.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := web.Response{
				Data: &struct {
					Account domain.Account `json:"account"`
				}{},
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
