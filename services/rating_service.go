package services

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/amrshakerr/editor_portfolio/models"
	"gorm.io/gorm"
)

// RatingSummary is the one canonical aggregate over all reviews. Average is
// nil, not zero, when there are no reviews.
type RatingSummary struct {
	Average *float64 `json:"average"`
	Count   int64    `json:"count"`
}

var (
	summaryCache    *RatingSummary
	summaryMutex    sync.RWMutex
	lastComputeTime time.Time
)

// GetRatingSummary serves the cached snapshot when fresh and recomputes it
// otherwise. Writes invalidate the cache, so staleness is bounded by the
// cron refresh interval only when the table is idle.
func GetRatingSummary(db *gorm.DB) (RatingSummary, error) {
	summaryMutex.RLock()
	if summaryCache != nil && time.Since(lastComputeTime) < 5*time.Minute {
		cached := *summaryCache
		summaryMutex.RUnlock()
		return cached, nil
	}
	summaryMutex.RUnlock()

	return RefreshRatingSummary(db)
}

// RefreshRatingSummary recomputes the aggregate from the database and
// replaces the snapshot.
func RefreshRatingSummary(db *gorm.DB) (RatingSummary, error) {
	var result struct {
		Avg   float64
		Count int64
	}
	err := db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").
		Scan(&result).Error
	if err != nil {
		return RatingSummary{}, err
	}

	summary := RatingSummary{Count: result.Count}
	if result.Count > 0 {
		rounded := math.Round(result.Avg*10) / 10
		summary.Average = &rounded
	}

	summaryMutex.Lock()
	summaryCache = &summary
	lastComputeTime = time.Now()
	summaryMutex.Unlock()

	return summary, nil
}

// InvalidateRatingSummary drops the snapshot after any review write.
func InvalidateRatingSummary() {
	summaryMutex.Lock()
	summaryCache = nil
	summaryMutex.Unlock()
}

// WarmRatingSummary is the cron entry point; failures are logged and the
// stale snapshot stays in place.
func WarmRatingSummary(db *gorm.DB) {
	if _, err := RefreshRatingSummary(db); err != nil {
		log.Printf("🔥 Failed to refresh rating summary: %v", err)
	}
}
