// Package ledgerdelivery manages delivery layer of balance mutations.
package ledgerdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/coinkeep/ledger-core/internal/domain"
	"github.com/coinkeep/ledger-core/pkg/errorspkg"
	"github.com/coinkeep/ledger-core/pkg/web"
)

// Service provides service layer interface needed by ledger delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package ledgerdelivery
type Service interface {
	Deposit(ctx context.Context, accountID int32, amount string) (domain.MutationTxResult, error)
	Withdraw(ctx context.Context, accountID int32, amount string) (domain.MutationTxResult, error)
	Transfer(ctx context.Context, arg domain.TransferParams) (domain.TransferTxResult, error)
}

// Handler facilitates ledger delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns ledger handler.
func NewHandler(ls Service) Handler {
	return Handler{service: ls}
}

type mutationData struct {
	Account     domain.Account     `json:"account"`
	Transaction domain.Transaction `json:"transaction"`
}
type mutationResponse struct {
	Data mutationData `json:"data,omitempty"`
}

type mutationRequest struct {
	AccountID int32  `json:"account_id" binding:"required,min=1"`
	Amount    string `json:"amount" binding:"required,amount"`
}

// Deposit handles http request to credit an account.
func (h *Handler) Deposit(gctx *gin.Context) {
	h.mutate(gctx, h.service.Deposit)
}

// Withdraw handles http request to debit an account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	h.mutate(gctx, h.service.Withdraw)
}

func (h *Handler) mutate(gctx *gin.Context, op func(ctx context.Context, accountID int32, amount string) (domain.MutationTxResult, error)) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req mutationRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	result, err := op(ctx, req.AccountID, req.Amount)
	if err != nil {
		handleServiceError(gctx, err)
		return
	}

	res := mutationResponse{
		Data: mutationData{
			Account:     result.Account,
			Transaction: result.Transaction,
		},
	}

	gctx.JSON(http.StatusOK, res)
}

type transferData struct {
	FromAccount     domain.Account     `json:"from_account"`
	ToAccount       domain.Account     `json:"to_account"`
	FromTransaction domain.Transaction `json:"from_transaction"`
	ToTransaction   domain.Transaction `json:"to_transaction"`
}
type transferResponse struct {
	Data transferData `json:"data,omitempty"`
}

type transferRequest struct {
	FromAccountID int32  `json:"from_account_id" binding:"required,min=1"`
	ToAccountID   int32  `json:"to_account_id" binding:"required,min=1"`
	Amount        string `json:"amount" binding:"required,amount"`
}

// Transfer handles http request to move money between two accounts.
func (h *Handler) Transfer(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req transferRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	arg := domain.TransferParams{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
	}

	result, err := h.service.Transfer(ctx, arg)
	if err != nil {
		handleServiceError(gctx, err)
		return
	}

	res := transferResponse{
		Data: transferData{
			FromAccount:     result.FromAccount,
			ToAccount:       result.ToAccount,
			FromTransaction: result.FromTransaction,
			ToTransaction:   result.ToTransaction,
		},
	}

	gctx.JSON(http.StatusOK, res)
}

func handleServiceError(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrInvalidAmount, domain.ErrNegativeAmount, domain.ErrSameAccount:
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	case domain.ErrAccountNotFound, domain.ErrFromAccountNotFound, domain.ErrToAccountNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case domain.ErrInsufficientBalance:
		gctx.JSON(http.StatusUnprocessableEntity, web.Error(err))
	case errorspkg.ErrUnavailable:
		gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}
