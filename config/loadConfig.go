package config

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"time"
)

const (
	defaultTimeoutSeconds = 30
	defaultMongoURI       = "mongodb://localhost:27017/finance_db"
	defaultMongoHost      = "localhost"
	defaultMongoPort      = "27017"
	defaultDatabase       = "finance_db"
	defaultCollection     = "transactions"
	defaultHTTPAddr       = ":8080"
	envMongoURI           = "MONGO_URI"
	envMongoHost          = "MONGO_HOST"
	envMongoUser          = "MONGO_USER"
	envMongoPassword      = "MONGO_PASSWORD"
	envMongoDatabase      = "MONGO_DB"
	envHTTPAddr           = "HTTP_ADDR"
	envTimeoutSeconds     = "REQUEST_TIMEOUT_SECONDS"
)

// LoadConfig loads the application configuration from environment variables or uses default values.
func LoadConfig(ctx context.Context, logger *slog.Logger) *Config {
	database := os.Getenv(envMongoDatabase)
	if database == "" {
		database = defaultDatabase
		logger.DebugContext(ctx, "Using default database name", "db", database)
	} else {
		logger.DebugContext(ctx, "Using database name from environment variable", "db", database)
	}

	mongoURI := os.Getenv(envMongoURI)
	mongoURI = formatMongoURI(ctx, mongoURI, database, logger)

	httpAddr := os.Getenv(envHTTPAddr)
	if httpAddr == "" {
		httpAddr = defaultHTTPAddr
		logger.DebugContext(ctx, "Using default HTTP listen address", "addr", httpAddr)
	} else {
		logger.DebugContext(ctx, "Using HTTP listen address from environment variable", "addr", httpAddr)
	}

	timeout := loadTimeout(ctx, logger)

	return &Config{
		MongoURI:       mongoURI,
		Database:       database,
		Collection:     defaultCollection,
		HTTPAddr:       httpAddr,
		RequestTimeout: timeout,
	}
}

// Fetch the request timeout env var or fall back to the default.
func loadTimeout(ctx context.Context, logger *slog.Logger) time.Duration {
	timeoutStr := os.Getenv(envTimeoutSeconds)
	if timeoutStr == "" {
		logger.DebugContext(ctx, "Using default request timeout", "seconds", defaultTimeoutSeconds)
		return defaultTimeoutSeconds * time.Second
	}

	seconds, err := strconv.Atoi(timeoutStr)
	if err != nil || seconds <= 0 {
		logger.WarnContext(
			ctx,
			"Invalid value for REQUEST_TIMEOUT_SECONDS, using default",
			"value", timeoutStr,
			"default", defaultTimeoutSeconds,
			"error", err,
		)
		return defaultTimeoutSeconds * time.Second
	}

	logger.DebugContext(ctx, "Set request timeout from environment variable", "seconds", seconds)
	return time.Duration(seconds) * time.Second
}

// formatMongoURI formats mongo settings to a url and return the result.
func formatMongoURI(
	ctx context.Context,
	mongoURI string,
	database string,
	logger *slog.Logger,
) string {
	if mongoURI != "" {
		logger.DebugContext(ctx, "Using MongoDB URI from environment variable", "uri", mongoURI)
		return mongoURI
	}

	mongoHost := os.Getenv(envMongoHost)
	if mongoHost == "" {
		mongoHost = defaultMongoHost
		logger.DebugContext(ctx, "Using default MongoDB host", "host", mongoHost)
	} else {
		logger.DebugContext(ctx, "Using MongoDB host from environment variable", "host", mongoHost)
	}

	mongoUser := os.Getenv(envMongoUser)
	mongoPassword := os.Getenv(envMongoPassword)

	if mongoUser != "" && mongoPassword != "" {
		hostPort := net.JoinHostPort(mongoHost, defaultMongoPort)
		mongoURI = fmt.Sprintf(
			"mongodb://%s:%s@%s/%s?authSource=admin",
			mongoUser,
			mongoPassword,
			hostPort,
			database,
		)
		logger.DebugContext(ctx, "Created MongoDB URI from user, password, and host", "uri", mongoURI)
	} else {
		mongoURI = defaultMongoURI
		logger.DebugContext(ctx, "Using default MongoDB URI", "uri", mongoURI)
	}
	return mongoURI
}
