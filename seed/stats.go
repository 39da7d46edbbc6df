package seed

import (
	"fmt"
	"log/slog"
)

// Stats holds counters for one seeding run.
type Stats struct {
	Inserted int
	Updated  int
	Failed   int
	Failures map[string]string
}

// NewStats creates and initializes a new Stats object.
func NewStats() *Stats {
	return &Stats{
		Failures: make(map[string]string),
	}
}

// AddFailure records a failed operation and its reason.
func (s *Stats) AddFailure(key, reason string) {
	s.Failed++
	s.Failures[key] = reason
}

// Log prints the final statistics to the provided logger.
func (s *Stats) Log(logger *slog.Logger) {
	logger.Info("--- Seeding Stats ---")
	logger.Info(fmt.Sprintf("Documents inserted: %d", s.Inserted))
	logger.Info(fmt.Sprintf("Field-merge updates applied: %d", s.Updated))
	logger.Info(fmt.Sprintf("Operations failed: %d", s.Failed))
	if s.Failed > 0 {
		logger.Info("Failures:")
		for key, reason := range s.Failures {
			logger.Info(fmt.Sprintf("- %s: %s", key, reason))
		}
	}
	logger.Info("---------------------")
}
