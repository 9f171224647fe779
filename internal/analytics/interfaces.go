package analytics

import (
	"context"

	"mazdady-market/internal/kafka"
)

// AnalyticsRepo persists per-user category weights.
type AnalyticsRepo interface {
	UpdatePreferences(ctx context.Context, userID string, weights map[string]int) error
	GetTopCategories(ctx context.Context, userID string, limit int) ([]string, error)
}

// AnalyticsService turns marketplace events into preference updates.
type AnalyticsService interface {
	ProcessEvent(ctx context.Context, event kafka.Event) error
	GetTopCategories(ctx context.Context, userID string, limit int) ([]string, error)
}
