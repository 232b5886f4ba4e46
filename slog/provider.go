// Package slog provides logging decorators for provdir services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/provdir/provdir"
)

// Ensure LoggingProviderService implements provdir.ProviderService.
var _ provdir.ProviderService = (*LoggingProviderService)(nil)

// LoggingProviderService wraps a ProviderService with debug logging.
type LoggingProviderService struct {
	next   provdir.ProviderService
	logger *slog.Logger
}

// NewLoggingProviderService creates a new LoggingProviderService.
func NewLoggingProviderService(next provdir.ProviderService, logger *slog.Logger) *LoggingProviderService {
	return &LoggingProviderService{next: next, logger: logger}
}

// SaveProvider delegates to the wrapped service and logs the operation.
func (s *LoggingProviderService) SaveProvider(ctx context.Context, p *provdir.Provider) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save provider",
			"name", p.Name,
			"id", p.ID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveProvider(ctx, p)
}

// FindProviderByID delegates to the wrapped service and logs the operation.
func (s *LoggingProviderService) FindProviderByID(ctx context.Context, id string) (p *provdir.Provider, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find provider",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindProviderByID(ctx, id)
}

// FindProviders delegates to the wrapped service and logs the operation.
func (s *LoggingProviderService) FindProviders(ctx context.Context, filter provdir.ProviderFilter) (providers []*provdir.Provider, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find providers",
			"count", len(providers),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindProviders(ctx, filter)
}

// DeleteProvider delegates to the wrapped service and logs the operation.
func (s *LoggingProviderService) DeleteProvider(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete provider",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteProvider(ctx, id)
}
