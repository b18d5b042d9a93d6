package photo

import "github.com/arvane/photodex/database/models"

// rankByDistance filters a distance-sorted candidate set. With an explicit
// maximum distance, entries beyond it are dropped. Without one, the cutoff
// adapts to the best match: keep entries within min(closest+delta, cap).
// Anchoring the window to the observed best match adapts to corpus
// density; the absolute cap bounds admission when even the best match is
// weak. Ascending order is preserved.
func rankByDistance(matches []models.PhotoMatch, maxDistance *float32, delta, cap float32) []models.PhotoMatch {
	if len(matches) == 0 {
		return matches
	}

	var threshold float32
	if maxDistance != nil {
		threshold = *maxDistance
	} else {
		min := matches[0].Distance
		for _, m := range matches[1:] {
			if m.Distance < min {
				min = m.Distance
			}
		}
		threshold = min + delta
		if threshold > cap {
			threshold = cap
		}
	}

	kept := make([]models.PhotoMatch, 0, len(matches))
	for _, m := range matches {
		if m.Distance <= threshold {
			kept = append(kept, m)
		}
	}
	return kept
}
