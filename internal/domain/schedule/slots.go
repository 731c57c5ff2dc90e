package schedule

import "sort"

// SlotStarts generates the slot start times for one day from the windows
// covering it. Within each window, slots of durationMins are laid out from
// the window start for as long as a full slot still fits; a remainder
// shorter than one duration is discarded, never shortened into a partial
// slot. Start times produced by more than one overlapping window appear
// once. The result is ascending.
func SlotStarts(durationMins int, windows []*Window) []TimeOfDay {
	if durationMins <= 0 {
		return nil
	}

	seen := make(map[TimeOfDay]struct{})
	for _, w := range windows {
		for start := w.StartTime; start.Add(durationMins) <= w.EndTime; start = start.Add(durationMins) {
			seen[start] = struct{}{}
		}
	}

	starts := make([]TimeOfDay, 0, len(seen))
	for s := range seen {
		starts = append(starts, s)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })
	return starts
}
