package app

import (
	"github.com/RSanjanaS/APP-development-C2G/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Scheduled payments
	r.HandleFunc("/api/payments", deps.ScheduleHandler.SchedulePayment).Methods("POST")
	r.HandleFunc("/api/payments", deps.ScheduleHandler.ListPayments).Methods("GET")
	r.HandleFunc("/api/payments/calendar", deps.ScheduleHandler.CalendarIndex).Methods("GET")

	// Transfers
	r.HandleFunc("/api/transfers", deps.TransferHandler.CreateTransfer).Methods("POST")
	r.HandleFunc("/api/transfers", deps.TransferHandler.ListTransfers).Methods("GET")

	// Wallet
	r.HandleFunc("/api/wallet/cards", deps.WalletHandler.AddCard).Methods("POST")
	r.HandleFunc("/api/wallet/cards", deps.WalletHandler.ListCards).Methods("GET")
	r.HandleFunc("/api/wallet/cards/{cardId}/balance", deps.WalletHandler.UpdateBalance).Methods("PUT")

	// Currency exchange
	r.HandleFunc("/api/exchange/convert", deps.ExchangeHandler.Convert).Methods("POST")
	r.HandleFunc("/api/exchange/history", deps.ExchangeHandler.History).Methods("GET")

	// Investment portfolio
	r.HandleFunc("/api/investments", deps.InvestmentHandler.AddHolding).Methods("POST")
	r.HandleFunc("/api/investments", deps.InvestmentHandler.ListHoldings).Methods("GET")
	r.HandleFunc("/api/investments/portfolio", deps.InvestmentHandler.Portfolio).Methods("GET")
	r.HandleFunc("/api/investments/{holdingId}", deps.InvestmentHandler.DeleteHolding).Methods("DELETE")

	// Statement and forecast
	r.HandleFunc("/api/statement", deps.StatementHandler.GetStatement).Queries("from", "{from}", "to", "{to}").Methods("GET")
	r.HandleFunc("/api/forecast", deps.PredictionHandler.GetForecast).Methods("GET")

	// User management
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/login", deps.UserHandler.Login).Methods("POST")
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateUser).Methods("PUT")

	// Google integration
	r.HandleFunc("/api/integrations/google/auth/login", deps.GoogleAuth.OAuthLogin).Methods("GET")
	r.HandleFunc("/api/integrations/google/auth/logout", deps.GoogleAuth.OAuthLogout).Methods("DELETE")
	r.HandleFunc("/api/integrations/google/auth/callback", deps.GoogleAuth.OAuthCallback).Methods("GET")
	r.HandleFunc("/api/integrations/google/export", deps.GoogleHandler.ExportPayments).Methods("POST")
}
