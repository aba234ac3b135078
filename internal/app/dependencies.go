package app

import (
	"database/sql"

	"github.com/RSanjanaS/APP-development-C2G/internal/config"
	"github.com/RSanjanaS/APP-development-C2G/internal/event_bus"
	"github.com/RSanjanaS/APP-development-C2G/internal/utils"
	"github.com/RSanjanaS/APP-development-C2G/pkg/exchange"
	"github.com/RSanjanaS/APP-development-C2G/pkg/google"
	"github.com/RSanjanaS/APP-development-C2G/pkg/investment"
	"github.com/RSanjanaS/APP-development-C2G/pkg/notifier"
	"github.com/RSanjanaS/APP-development-C2G/pkg/prediction"
	"github.com/RSanjanaS/APP-development-C2G/pkg/schedule"
	"github.com/RSanjanaS/APP-development-C2G/pkg/statement"
	"github.com/RSanjanaS/APP-development-C2G/pkg/transfer"
	"github.com/RSanjanaS/APP-development-C2G/pkg/user"
	"github.com/RSanjanaS/APP-development-C2G/pkg/wallet"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus

	UserService user.Service
	UserHandler *user.Handler
	TokenIssuer *user.TokenIssuer

	ScheduleRepo    schedule.Repository
	ScheduleService schedule.Service
	ScheduleHandler *schedule.Handler

	TransferRepo    transfer.Repository
	TransferService transfer.Service
	TransferHandler *transfer.Handler

	WalletRepo    wallet.Repository
	WalletService wallet.Service
	WalletHandler *wallet.Handler

	ExchangeRepo    exchange.Repository
	ExchangeService exchange.Service
	ExchangeHandler *exchange.Handler

	InvestmentRepo    investment.Repository
	InvestmentService investment.Service
	InvestmentHandler *investment.Handler

	StatementService  statement.Service
	CsvRenderer       *statement.CsvRendererImpl
	StatementHandler  *statement.Handler
	PredictionService prediction.Service
	PredictionHandler *prediction.Handler

	Notifier *notifier.Notifier

	GoogleAuth    *google.Auth
	Exporter      google.Exporter
	GoogleHandler *google.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBus()

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.TokenIssuer = user.NewTokenIssuer(cfg.Auth)
	deps.UserHandler = user.NewHandler(deps.UserService, deps.TokenIssuer)

	deps.ScheduleRepo = schedule.NewRepository(db)
	deps.ScheduleService = schedule.NewService(deps.ScheduleRepo, deps.UserService, deps.EventBus)
	deps.ScheduleHandler = schedule.NewHandler(deps.ScheduleService)

	deps.TransferRepo = transfer.NewRepository(db)
	deps.TransferService = transfer.NewService(deps.TransferRepo, deps.UserService, deps.EventBus)
	deps.TransferHandler = transfer.NewHandler(deps.TransferService)

	deps.WalletRepo = wallet.NewRepository(db)
	deps.WalletService = wallet.NewService(deps.WalletRepo, deps.UserService)
	deps.WalletHandler = wallet.NewHandler(deps.WalletService)

	feePercent, err := decimal.NewFromString(cfg.Exchange.FeePercent)
	if err != nil {
		log.Warnf("Invalid exchange fee percent %q, using 2", cfg.Exchange.FeePercent)
		feePercent = decimal.NewFromInt(2)
	}
	deps.ExchangeRepo = exchange.NewRepository(db)
	deps.ExchangeService = exchange.NewService(
		exchange.NewRateAPIClient(cfg.Exchange.RateApiURL),
		exchange.NewCBRClient(cfg.Exchange.CBRURL),
		deps.ExchangeRepo,
		deps.UserService,
		feePercent,
	)
	deps.ExchangeHandler = exchange.NewHandler(deps.ExchangeService)

	deps.InvestmentRepo = investment.NewRepository(db)
	deps.InvestmentService = investment.NewService(
		deps.InvestmentRepo,
		investment.NewYahooClient(cfg.Investment.YahooURL),
		investment.NewCoinGeckoClient(cfg.Investment.CoinGeckoURL),
		deps.UserService,
	)
	deps.InvestmentHandler = investment.NewHandler(deps.InvestmentService)

	deps.StatementService = statement.NewService(deps.TransferService)
	deps.CsvRenderer = statement.NewCsvRenderer()
	deps.StatementHandler = statement.NewHandler(deps.StatementService, deps.CsvRenderer)

	deps.PredictionService = prediction.NewService(deps.TransferService, deps.ScheduleService, deps.Clock)
	deps.PredictionHandler = prediction.NewHandler(deps.PredictionService)

	deps.Notifier = notifier.NewNotifier(
		deps.ScheduleService,
		deps.UserService,
		deps.EventBus,
		notifier.NewSMTPSender(cfg.SMTP),
		deps.Clock,
	)

	deps.GoogleAuth = google.NewAuth(db, deps.UserService, cfg)
	deps.Exporter = google.NewExporter(deps.GoogleAuth, deps.ScheduleService)
	deps.GoogleHandler = google.NewHandler(deps.Exporter)

	return deps
}
