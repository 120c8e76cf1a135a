package publish_availability

import (
	"fmt"
	"time"

	"github.com/keyvisit/KV-ViewingService/internal/domain"
)

// validateIntervals проверяет корректность набора интервалов:
// непустой список, лимит на размер батча, длительность каждого интервала,
// интервалы в будущем, отсутствие попарных пересечений внутри запроса.
func validateIntervals(intervals []domain.Interval, now time.Time) error {
	if len(intervals) == 0 {
		return fmt.Errorf("%w: empty intervals list", ErrInvalidInterval)
	}

	if len(intervals) > domain.MaxIntervalsPerPublish {
		return fmt.Errorf("%w: too many intervals in one request (max %d)",
			ErrInvalidInterval, domain.MaxIntervalsPerPublish)
	}

	minDur := time.Duration(domain.MinSlotDurationMinutes) * time.Minute
	maxDur := time.Duration(domain.MaxSlotDurationMinutes) * time.Minute

	for i, iv := range intervals {
		if !iv.IsValid() {
			return fmt.Errorf("%w: interval %d has start_at >= end_at", ErrInvalidInterval, i)
		}

		dur := iv.EndAt.Sub(iv.StartAt)
		if dur < minDur || dur > maxDur {
			return fmt.Errorf("%w: interval %d duration must be between %d and %d minutes",
				ErrInvalidInterval, i, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
		}

		if !iv.StartAt.After(now) {
			return fmt.Errorf("%w: interval %d starts in the past", ErrInvalidInterval, i)
		}
	}

	// Попарная проверка пересечений внутри запроса.
	// Интервалы соприкасающиеся границами (end == start) пересечением не считаются.
	for i := 0; i < len(intervals); i++ {
		for j := i + 1; j < len(intervals); j++ {
			if intervals[i].Overlaps(intervals[j]) {
				return fmt.Errorf("%w: intervals %d and %d overlap within the request",
					ErrOverlapConflict, i, j)
			}
		}
	}

	return nil
}
