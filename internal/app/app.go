package app

import (
	"context"

	"github.com/maxbolgarin/changry/internal/agent"
	"github.com/maxbolgarin/changry/internal/changelog"
	"github.com/maxbolgarin/changry/internal/config"
	"github.com/maxbolgarin/changry/internal/history"
	"github.com/maxbolgarin/changry/internal/model/interfaces"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
)

// Changry is the main service that orchestrates all components
type Changry struct {
	source    interfaces.HistorySource
	extractor *history.Extractor
	agent     *agent.Agent
	generator *changelog.Generator

	cfg config.Config
	log logze.Logger
}

// New creates a new changelog service
func New(ctx context.Context, cfg config.Config) (*Changry, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errm.Wrap(err, "invalid config")
	}

	service := &Changry{
		cfg: cfg,
		log: logze.With("component", "app"),
	}

	if err := service.init(ctx, cfg); err != nil {
		return nil, errm.Wrap(err, "failed to initialize service")
	}

	return service, nil
}

// Run generates a changelog once
func (s *Changry) Run(ctx context.Context) (changelog.Result, error) {
	result, err := s.generator.Generate(ctx)
	if err != nil {
		return result, errm.Wrap(err, "failed to generate changelog")
	}
	return result, nil
}

func (s *Changry) init(ctx context.Context, cfg config.Config) (err error) {

	// Create history source
	s.source, err = history.NewSource(ctx, cfg.Source)
	if err != nil {
		return errm.Wrap(err, "failed to create history source")
	}
	s.extractor = history.NewExtractor(s.source)

	// Create AI agent
	s.agent, err = agent.New(ctx, cfg.Agent)
	if err != nil {
		return errm.Wrap(err, "failed to create AI agent")
	}

	// Create generator - this is the central orchestrator
	s.generator, err = changelog.NewGenerator(cfg.Output, s.extractor, s.agent)
	if err != nil {
		return errm.Wrap(err, "failed to create changelog generator")
	}

	s.log.Debug("service initialized", "source", cfg.Source.Type, "agent", cfg.Agent.Type)

	return nil
}
