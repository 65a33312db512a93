// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/coinkeep/ledger-core/internal/accountdelivery"
	"github.com/coinkeep/ledger-core/internal/accountrepo"
	"github.com/coinkeep/ledger-core/internal/accountservice"
	"github.com/coinkeep/ledger-core/internal/ledgerdelivery"
	"github.com/coinkeep/ledger-core/internal/ledgerrepo"
	"github.com/coinkeep/ledger-core/internal/ledgerservice"
	"github.com/coinkeep/ledger-core/internal/middleware"
	"github.com/coinkeep/ledger-core/internal/txndelivery"
	"github.com/coinkeep/ledger-core/internal/txnrepo"
	"github.com/coinkeep/ledger-core/internal/txnservice"
	"github.com/coinkeep/ledger-core/pkg/configpkg"
	"github.com/coinkeep/ledger-core/pkg/moneypkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	accountRepo := accountrepo.NewRepoPGS(conn)
	txnRepo := txnrepo.NewRepoPGS(conn)
	ledgerRepo := ledgerrepo.NewRepoPGS(conn)

	accountService := accountservice.New(accountRepo, ledgerRepo)
	ledgerService := ledgerservice.New(ledgerRepo, accountService)
	txnService := txnservice.New(txnRepo)

	accountHandler := accountdelivery.NewHandler(accountService)
	ledgerHandler := ledgerdelivery.NewHandler(ledgerService)
	txnHandler := txndelivery.NewHandler(txnService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/accounts", accountHandler.Create)
	engine.GET("/accounts/:id", accountHandler.Get)
	engine.GET("/accounts", accountHandler.List)
	engine.GET("/accounts/:id/transactions", txnHandler.List)

	engine.POST("/deposits", ledgerHandler.Deposit)
	engine.POST("/withdrawals", ledgerHandler.Withdraw)
	engine.POST("/transfers", ledgerHandler.Transfer)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("amount", moneypkg.ValidAmount)
		if err != nil {
			return nil, errors.New("cannot register amount validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
