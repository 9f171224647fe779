package etl

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/context"

	"mazdady-market/internal/types/market"
)

// ListingSource is the slice of the state container the extractor reads from.
type ListingSource interface {
	Listings() []market.Listing
}

type SnapshotExtractor struct {
	Source ListingSource
	Logger *zap.SugaredLogger
}

func NewSnapshotExtractor(source ListingSource, logger *zap.SugaredLogger) *SnapshotExtractor {
	return &SnapshotExtractor{
		Source: source,
		Logger: logger,
	}
}

// ExtractNew returns active listings touched since from.
func (e *SnapshotExtractor) ExtractNew(ctx context.Context, from time.Time) ([]market.Listing, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var result []market.Listing
	for _, l := range e.Source.Listings() {
		if l.Status != market.StatusActive {
			continue
		}
		if l.Stats.UpdatedAt.Before(from) {
			continue
		}
		result = append(result, l)
	}

	return result, nil
}
