package config

import (
	"time"
)

// Config holds the application configuration.
type Config struct {
	MongoURI       string
	Database       string
	Collection     string
	HTTPAddr       string
	RequestTimeout time.Duration
}
