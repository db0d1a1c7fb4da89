package store

import "showrunner/internal/platform/logger"

// PGConfig configures the postgres backend
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	SlowQueryMs int
	LogSQL      bool
}

// Config selects and configures backends for Open
type Config struct {
	PG PGConfig
}

// Option mutates the Store during Open
type Option func(*Store) error

// WithLogger sets the logger used by subclients
func WithLogger(l logger.Logger) Option {
	return func(s *Store) error {
		s.Log = l
		return nil
	}
}
