package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ssit-training/pos-terminal/internal/api"
	"github.com/ssit-training/pos-terminal/internal/auth"
	"github.com/ssit-training/pos-terminal/internal/checkout"
	"github.com/ssit-training/pos-terminal/internal/cli"
	"github.com/ssit-training/pos-terminal/internal/session"
	"github.com/ssit-training/pos-terminal/internal/views"
	"github.com/ssit-training/pos-terminal/pkg/config"
	"github.com/ssit-training/pos-terminal/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "pos"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "pos",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	vault, err := session.OpenSQLiteVault(cfg.Session.DBPath)
	if err != nil {
		logg.Error(context.Background(), "failed to open session vault", err)
		os.Exit(1)
	}
	defer func() {
		if err := vault.Close(); err != nil {
			logg.Error(context.Background(), "error closing session vault", err)
		}
	}()

	store, err := session.NewStore(vault, cfg.Session.TTL, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create session store", err)
		os.Exit(1)
	}

	client, err := api.NewClient(cfg.API, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create api client", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		API:     client,
		Session: store,
		Logger:  logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}
	client.UseCredentials(authService)

	checkoutService, err := checkout.NewService(client, cfg.Receipt, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	catalog, err := views.NewProductBrowser(client, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create product browser", err)
		os.Exit(1)
	}

	orders, err := views.NewOrderBrowser(client, cfg.Orders.PageSize, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create order browser", err)
		os.Exit(1)
	}

	dashboard, err := views.NewDashboard(client, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard", err)
		os.Exit(1)
	}

	app, err := cli.NewApp(cli.AppParams{
		Config:    cfg,
		Logger:    logg,
		Session:   store,
		Auth:      authService,
		Checkout:  checkoutService,
		Catalog:   catalog,
		Orders:    orders,
		Dashboard: dashboard,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create terminal app", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.Run(ctx)
}
