package analytics

import (
	"context"

	"go.uber.org/zap"

	"mazdady-market/internal/kafka"
)

type Service struct {
	repo   AnalyticsRepo
	logger *zap.SugaredLogger
}

func NewService(repo AnalyticsRepo, logger *zap.SugaredLogger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ProcessEvent folds one user action into the preference weights.
// Stronger signals carry bigger weights.
func (s *Service) ProcessEvent(ctx context.Context, event kafka.Event) error {
	if event.UserID == "" {
		return nil
	}

	weights := make(map[string]int)
	switch event.Type {
	case kafka.Search:
		for _, cat := range event.Categories {
			weights[cat] += 1
		}
	case kafka.View, kafka.Share:
		if len(event.Categories) > 0 {
			weights[event.Categories[0]] += 2
		}
	case kafka.Like:
		if len(event.Categories) > 0 {
			weights[event.Categories[0]] += 3
		}
	case kafka.Favorite:
		if len(event.Categories) > 0 {
			weights[event.Categories[0]] += 4
		}
	}

	if len(weights) == 0 {
		return nil
	}

	return s.repo.UpdatePreferences(ctx, event.UserID, weights)
}

func (s *Service) GetTopCategories(ctx context.Context, userID string, limit int) ([]string, error) {
	return s.repo.GetTopCategories(ctx, userID, limit)
}
