package marketplace

import (
	"strings"

	types "mazdady-market/internal/types/market"
)

// ModerationQueue is a pure projection over the snapshot: every active
// listing carrying at least one report, in natural listing order. Nothing
// is stored; banned listings fall out of the queue even if their reports
// are still attached.
func (m *Marketplace) ModerationQueue() []types.ModerationItem {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var queue []types.ModerationItem
	for i := range m.state.Listings {
		l := &m.state.Listings[i]
		if l.Status != types.StatusActive || len(l.Reports) == 0 {
			continue
		}

		reasons := make([]string, 0, len(l.Reports))
		for _, r := range l.Reports {
			reasons = append(reasons, r.Reason)
		}

		queue = append(queue, types.ModerationItem{
			ID:          "mod-ad-" + l.ID,
			Type:        "ad",
			TargetID:    l.ID,
			Reason:      strings.Join(reasons, ", "),
			ReportCount: len(l.Reports),
		})
	}

	return queue
}
