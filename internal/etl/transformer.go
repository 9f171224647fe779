package etl

import (
	"go.uber.org/zap"

	"mazdady-market/internal/types/elastic"
	"mazdady-market/internal/types/market"
)

type Transformer struct {
	Logger *zap.SugaredLogger
}

func NewTransformer(logger *zap.SugaredLogger) *Transformer {
	return &Transformer{
		Logger: logger,
	}
}

// Transform projects listings into their search index documents.
func (t *Transformer) Transform(input []market.Listing) []elastic.ListingDoc {
	docs := make([]elastic.ListingDoc, 0, len(input))
	for _, l := range input {
		docs = append(docs, elastic.ListingDoc{
			ID:          l.ID,
			Title:       l.Title,
			Description: l.Description,
			Category:    l.Category,
			SellerID:    l.SellerID,
			UpdatedAt:   l.Stats.UpdatedAt,
		})
	}

	t.Logger.Infof("Transformed %d docs succesfully", len(input))

	return docs
}
