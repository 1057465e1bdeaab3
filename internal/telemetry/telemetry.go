package telemetry

import (
	"context"

	"codeberg.org/mutker/spbmctl/internal/errors"
	"codeberg.org/mutker/spbmctl/internal/logger"
)

type service struct {
	repo Repository
	cfg  Config
}

// No-op implementation
type noopCollector struct{}

func NewService(cfg Config) (Collector, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	// If recording is disabled, return a no-op collector
	if !cfg.Enabled {
		logger.Debug().Msg("Telemetry recording disabled, using no-op collector")
		return &noopCollector{}, nil
	}

	repo, err := NewRepository(cfg)
	if err != nil {
		return nil, err // Already wrapped with appropriate error
	}

	return &service{
		repo: repo,
		cfg:  cfg,
	}, nil
}

func (s *service) Record(ctx context.Context, snapshot *Snapshot) error {
	errFactory := errors.New()

	if snapshot == nil {
		return errFactory.New(ErrInvalidSnapshot)
	}

	select {
	case <-ctx.Done():
		return errFactory.Wrap(ErrOperationTimeout, ctx.Err())
	default:
		if err := s.repo.Record(ctx, snapshot); err != nil {
			return errFactory.Wrap(ErrRecordFailed, err)
		}
	}

	return nil
}

func (s *service) Close() error {
	errFactory := errors.New()

	if err := s.repo.Close(); err != nil {
		return errFactory.Wrap(ErrServiceShutdown, err)
	}
	return nil
}

func (*noopCollector) Record(_ context.Context, _ *Snapshot) error {
	return nil
}

func (*noopCollector) Close() error {
	return nil
}
