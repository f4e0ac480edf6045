package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/jmroz/inquiry-desk/internal/kvstore"
	"github.com/jmroz/inquiry-desk/internal/models"
)

// StatsAggregator maintains the learning_stats tally. The read-modify-write
// of the shared key is serialized through mu; the KV contract offers no
// atomic increment, so without it concurrent transitions would lose counts.
type StatsAggregator struct {
	mu    sync.Mutex
	store kvstore.Store
}

func NewStatsAggregator(store kvstore.Store) *StatsAggregator {
	return &StatsAggregator{store: store}
}

func (a *StatsAggregator) Get(ctx context.Context) (models.LearningStats, error) {
	raw, err := a.store.Get(ctx, statsKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return models.LearningStats{}, nil
	}
	if err != nil {
		return models.LearningStats{}, err
	}

	var stats models.LearningStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return models.LearningStats{}, fmt.Errorf("%w: %s: %v", ErrCorruptRecord, statsKey, err)
	}
	return stats, nil
}

// Record folds one status transition into the tally. TotalProcessed always
// grows; Approved/Rejected only for their own status. AvgAccuracy is the
// approval rate in percent, recomputed on every call. The confidence value
// is carried for future scoring but does not affect the tally.
func (a *StatsAggregator) Record(ctx context.Context, status models.Status, confidence int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	stats, err := a.Get(ctx)
	if err != nil {
		return err
	}

	switch status {
	case models.StatusApproved:
		stats.Approved++
	case models.StatusRejected:
		stats.Rejected++
	}
	stats.TotalProcessed++
	stats.AvgAccuracy = int(math.Round(float64(stats.Approved) / float64(stats.TotalProcessed) * 100))

	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("error encoding stats: %v", err)
	}
	return a.store.Set(ctx, statsKey, raw)
}
