package viewer

import "cataloghub/pkg/models"

// PlanSpreads computes the two-up spreads for wide-viewport rendering,
// mimicking a physical bound book: the front and back covers stand alone,
// interior leaves pair up left/right. Pure function of the flat sequence.
//
// A one-page catalog is a lone cover. Otherwise the first spread is always
// {nil, page0}; interior pages pair consecutively from index 1; the final
// page ends up alone on the left of its own spread unless the interior
// pairing already consumed it as a right-hand page (odd interior count).
func PlanSpreads(pages []models.FlatPage) []models.Spread {
	if len(pages) == 0 {
		return nil
	}
	if len(pages) == 1 {
		return []models.Spread{{Right: &pages[0]}}
	}

	spreads := []models.Spread{{Right: &pages[0]}}
	last := len(pages) - 1
	for i := 1; i < last; i += 2 {
		sp := models.Spread{Left: &pages[i]}
		if i+1 <= last {
			sp.Right = &pages[i+1]
		}
		spreads = append(spreads, sp)
	}

	if !spreads[len(spreads)-1].Contains(last) {
		spreads = append(spreads, models.Spread{Left: &pages[last]})
	}
	return spreads
}

// SpreadIndexOf returns the index of the spread containing the flat page
// with the given global index, or -1 when no spread contains it.
func SpreadIndexOf(spreads []models.Spread, pageIndex int) int {
	for i, s := range spreads {
		if s.Contains(pageIndex) {
			return i
		}
	}
	return -1
}
