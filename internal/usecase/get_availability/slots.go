package get_availability

import (
	"sort"
	"time"

	"github.com/soleraspa/booking-service/internal/domain"
	"github.com/soleraspa/booking-service/pkg/types"
)

// providerFreeSlots computes one provider's availability for a date:
// the daily slot catalog minus the already-committed times.
//
// A provider who does not work on the date's weekday contributes nothing;
// the caller's intersection then goes empty, which is the intended signal
// ("pick another date"), never a partial answer.
func providerFreeSlots(p *domain.Provider, date time.Time, reserved []types.TimeString) []types.TimeString {
	if !p.WorksOn(date.Weekday()) {
		return []types.TimeString{}
	}

	taken := make(map[types.TimeString]struct{}, len(reserved))
	for _, t := range reserved {
		taken[t] = struct{}{}
	}

	free := make([]types.TimeString, 0, len(p.DailySlots))
	seen := make(map[types.TimeString]struct{}, len(p.DailySlots))
	for _, slot := range p.DailySlots {
		if _, ok := taken[slot]; ok {
			continue
		}
		if _, ok := seen[slot]; ok {
			continue
		}
		seen[slot] = struct{}{}
		free = append(free, slot)
	}

	return free
}

// intersectSlots returns the times present in every list, ascending and
// deduplicated. An empty input yields an empty result.
func intersectSlots(lists [][]types.TimeString) []types.TimeString {
	if len(lists) == 0 {
		return []types.TimeString{}
	}

	counts := make(map[types.TimeString]int)
	for _, list := range lists {
		for _, slot := range list {
			counts[slot]++
		}
	}

	common := make([]types.TimeString, 0)
	for slot, n := range counts {
		if n == len(lists) {
			common = append(common, slot)
		}
	}

	sort.Slice(common, func(i, j int) bool {
		return common[i].IsBefore(common[j])
	})

	return common
}
