package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/moneta-dev/moneta/internal/account"
	accountStore "github.com/moneta-dev/moneta/internal/account/store"
	"github.com/moneta-dev/moneta/internal/advice"
	"github.com/moneta-dev/moneta/internal/alert"
	"github.com/moneta-dev/moneta/internal/bill"
	billStore "github.com/moneta-dev/moneta/internal/bill/store"
	"github.com/moneta-dev/moneta/internal/budget"
	budgetStore "github.com/moneta-dev/moneta/internal/budget/store"
	"github.com/moneta-dev/moneta/internal/categorize"
	categorizeStore "github.com/moneta-dev/moneta/internal/categorize/store"
	"github.com/moneta-dev/moneta/internal/category"
	categoryStore "github.com/moneta-dev/moneta/internal/category/store"
	"github.com/moneta-dev/moneta/internal/config"
	"github.com/moneta-dev/moneta/internal/database"
	"github.com/moneta-dev/moneta/internal/export"
	monetaHttp "github.com/moneta-dev/moneta/internal/http"
	accountHandler "github.com/moneta-dev/moneta/internal/http/account"
	adviceHandler "github.com/moneta-dev/moneta/internal/http/advice"
	billHandler "github.com/moneta-dev/moneta/internal/http/bill"
	budgetHandler "github.com/moneta-dev/moneta/internal/http/budget"
	categorizeHandler "github.com/moneta-dev/moneta/internal/http/categorize"
	categoryHandler "github.com/moneta-dev/moneta/internal/http/category"
	exportHandler "github.com/moneta-dev/moneta/internal/http/export"
	importHandler "github.com/moneta-dev/moneta/internal/http/importcsv"
	txHandler "github.com/moneta-dev/moneta/internal/http/transaction"
	"github.com/moneta-dev/moneta/internal/notify"
	"github.com/moneta-dev/moneta/internal/statement"
	"github.com/moneta-dev/moneta/internal/transaction"
	txStore "github.com/moneta-dev/moneta/internal/transaction/store"
	userStore "github.com/moneta-dev/moneta/internal/user/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(cfg.ConnectionString()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	var notifier alert.Notifier = notify.LogNotifier{}
	if cfg.MailEnabled() {
		notifier = notify.NewSMTPNotifier(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	}

	var (
		accounts     = accountStore.New(db)
		bills        = billStore.New(db)
		budgets      = budgetStore.New(db)
		categories   = categoryStore.New(db)
		rules        = categorizeStore.New(db)
		transactions = txStore.New(db)
		users        = userStore.New(db)
	)

	var (
		accountService     = account.NewService(accounts)
		categoryService    = category.NewService(categories)
		transactionService = transaction.NewService(transactions)
		billService        = bill.NewService(bills)
		budgetService      = budget.NewService(budgets, transactionService, categories)
		categorizeService  = categorize.NewService(rules)
		statementService   = statement.NewService(categorizeService)
		alertService       = alert.NewService(budgets, budgetService, categories, users, notifier)
		adviceService      = advice.NewService(transactionService, categoryService, advice.NewClient(cfg.Advice.BaseURL, cfg.Advice.Token))
		exportService      = export.NewService(transactionService, categoryService)
	)

	var (
		accountH     = accountHandler.NewHandler(accountService)
		categoryH    = categoryHandler.NewHandler(categoryService)
		transactionH = txHandler.NewHandler(transactionService, alertService)
		importH      = importHandler.NewHandler(statementService, transactionService)
		billH        = billHandler.NewHandler(billService)
		budgetH      = budgetHandler.NewHandler(budgetService)
		categorizeH  = categorizeHandler.NewHandler(categorizeService)
		adviceH      = adviceHandler.NewHandler(adviceService)
		exportH      = exportHandler.NewHandler(exportService)
	)

	router := monetaHttp.New([]byte(cfg.JWT.Secret), accountH, categoryH, transactionH, importH, billH, budgetH, categorizeH, adviceH, exportH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
