package etl

import (
	"context"

	"go.uber.org/zap"

	"mazdady-market/internal/types/elastic"
)

// BulkIndexer is satisfied by the Elasticsearch service.
type BulkIndexer interface {
	BulkIndex(ctx context.Context, docs []elastic.ListingDoc) error
}

type ElasticLoader struct {
	Service BulkIndexer
	Logger  *zap.SugaredLogger
}

func NewElasticLoader(service BulkIndexer, logger *zap.SugaredLogger) *ElasticLoader {
	return &ElasticLoader{
		Service: service,
		Logger:  logger,
	}
}

// Load pushes prepared documents into the search index.
func (l *ElasticLoader) Load(ctx context.Context, docs []elastic.ListingDoc) error {
	if len(docs) == 0 {
		l.Logger.Infow("No documents to load")
		return nil
	}

	l.Logger.Infow("Loading documents to Elasticsearch", "count", len(docs))
	err := l.Service.BulkIndex(ctx, docs)
	if err != nil {
		l.Logger.Errorw("Failed to bulk index documents", zap.Error(err))
		return err
	}

	l.Logger.Infow("Successfully indexed documents", "count", len(docs))

	return nil
}
