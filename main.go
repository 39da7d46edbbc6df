// main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/handlers"
	"go.mongodb.org/mongo-driver/bson"

	"training/finledger/api"
	"training/finledger/appcontext"
	"training/finledger/config"
	"training/finledger/ledger"
	"training/finledger/seed"
	"training/finledger/storage"
)

func main() {
	// Create the logger instance at the very beginning.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	if len(os.Args) < 2 {
		logger.Error("Usage: finledger <serve|seed|report> [options]")
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	if err := run(logger, command, args); err != nil {
		logger.Error("Application terminated with an error", "error", fmt.Sprintf("%+v", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger, command string, args []string) error {
	ctx := appcontext.WithLogger(context.Background(), logger)
	cfg := config.LoadConfig(ctx, logger)

	switch command {
	case "serve":
		return serve(ctx, logger, cfg)
	case "seed":
		return runSeed(ctx, logger, cfg)
	case "report":
		return runReport(ctx, logger, cfg, args)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// serve starts the REST service. The MongoDB client is opened once here and
// disconnected when the server stops.
func serve(ctx context.Context, logger *slog.Logger, cfg *config.Config) error {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()

	client, err := storage.ConnectToMongoDB(connectCtx, cfg.MongoURI)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		return fmt.Errorf("connection to MongoDB failed: %w", err)
	}
	defer func() {
		if deferErr := client.Disconnect(ctx); deferErr != nil {
			logger.Error("Error disconnecting from MongoDB", "error", deferErr)
		}
	}()

	repo := storage.NewMongoRepository(storage.NewMongoProvider(client, cfg.Database), cfg.Collection)
	service := ledger.NewService(repo)
	handler := api.NewTransactionHandler(service, logger)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handlers.LoggingHandler(os.Stdout, router),
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout,
	}

	stopCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Ledger API listening", "addr", cfg.HTTPAddr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-stopCtx.Done():
		logger.Info("Shutdown signal received, stopping server")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	}
}

// runSeed loads the fixture transactions and applies the sample updates.
func runSeed(ctx context.Context, logger *slog.Logger, cfg *config.Config) error {
	opCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()

	client, err := storage.ConnectToMongoDB(opCtx, cfg.MongoURI)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		return fmt.Errorf("connection to MongoDB failed: %w", err)
	}
	defer func() {
		if deferErr := client.Disconnect(ctx); deferErr != nil {
			logger.Error("Error disconnecting from MongoDB", "error", deferErr)
		}
	}()

	repo := storage.NewMongoRepository(storage.NewMongoProvider(client, cfg.Database), cfg.Collection)

	stats, err := seed.Run(opCtx, repo)
	if stats != nil {
		stats.Log(logger)
	}
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	logger.Info("Seeding completed successfully")
	return nil
}

// runReport executes one of the canned aggregations plus the projected
// txnId/amount listing and logs the rows.
func runReport(ctx context.Context, logger *slog.Logger, cfg *config.Config, args []string) error {
	reportFlagSet := flag.NewFlagSet("report", flag.ExitOnError)
	summary := reportFlagSet.String("summary", "debits", "Summary to run: debits or success-total")
	if err := reportFlagSet.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	opCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()

	client, err := storage.ConnectToMongoDB(opCtx, cfg.MongoURI)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		return fmt.Errorf("connection to MongoDB failed: %w", err)
	}
	defer func() {
		if deferErr := client.Disconnect(ctx); deferErr != nil {
			logger.Error("Error disconnecting from MongoDB", "error", deferErr)
		}
	}()

	repo := storage.NewMongoRepository(storage.NewMongoProvider(client, cfg.Database), cfg.Collection)
	service := ledger.NewService(repo)

	switch *summary {
	case "debits":
		rows, err := service.DebitsByAccount(opCtx)
		if err != nil {
			return fmt.Errorf("debits-by-account report failed: %w", err)
		}
		logger.Info("Amount debited by each account", "rows", len(rows))
		for _, row := range rows {
			logger.Info("Account debits", "accountId", row.AccountID, "totalDebits", row.TotalDebits)
		}
	case "success-total":
		total, err := service.TotalSuccessAmount(opCtx)
		if err != nil {
			return fmt.Errorf("success-total report failed: %w", err)
		}
		logger.Info("Total amount of successful transactions", "total", total)
	default:
		return fmt.Errorf("unknown summary: %s", *summary)
	}

	docs, err := repo.FindProjected(opCtx, bson.M{}, []string{"txnId", "amount"})
	if err != nil {
		return fmt.Errorf("projected listing failed: %w", err)
	}
	logger.Info("All transactions (txnId and amount only)", "count", len(docs))
	for _, doc := range docs {
		logger.Info("Transaction", "txnId", doc["txnId"], "amount", doc["amount"])
	}

	return nil
}
