package etl

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Pipeline struct {
	extractor   *SnapshotExtractor
	transformer *Transformer
	loader      *ElasticLoader
	logger      *zap.SugaredLogger
	interval    time.Duration
}

func NewPipeline(
	extractor *SnapshotExtractor,
	transformer *Transformer,
	loader *ElasticLoader,
	logger *zap.SugaredLogger,
	interval time.Duration,
) *Pipeline {
	return &Pipeline{
		extractor:   extractor,
		transformer: transformer,
		loader:      loader,
		logger:      logger,
		interval:    interval,
	}
}

func (p *Pipeline) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Infow("ETL pipeline started")

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.RunOnce(ctx, time.Now().Add(-p.interval))
		}
	}
}

// RunOnce performs a single extract-transform-load iteration.
func (p *Pipeline) RunOnce(ctx context.Context, from time.Time) {
	listings, err := p.extractor.ExtractNew(ctx, from)
	if err != nil {
		p.logger.Errorw("Extracting failed", zap.Error(err))

		return
	}
	if len(listings) == 0 {
		p.logger.Infow("No new listings to process")

		return
	}

	docs := p.transformer.Transform(listings)

	if err := p.loader.Load(ctx, docs); err != nil {
		p.logger.Errorw("Error while loading docs to ES", zap.Error(err))
		return
	}

	p.logger.Infof("ETL pipeline completed, successfully loaded %d docs", len(listings))
}
