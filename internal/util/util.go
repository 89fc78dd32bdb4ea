// Package util holds display helpers for route summaries.
package util

import (
	"fmt"
	"math"
)

// FormatDistance formats a road distance in kilometers (e.g., "850 m", "1.8 km", "124 km").
func FormatDistance(km float64) string {
	if math.IsNaN(km) || km < 0 {
		return "-"
	}

	if km < 1 {
		return fmt.Sprintf("%d m", int(math.Round(km*1000)))
	}

	if km < 100 {
		return fmt.Sprintf("%.1f km", km)
	}

	return fmt.Sprintf("%d km", int(math.Round(km)))
}

// FormatETA formats a travel time in minutes (e.g., "<1 min", "12 min", "1 h 5 min").
func FormatETA(minutes float64) string {
	if math.IsNaN(minutes) || minutes < 0 {
		return "-"
	}

	rounded := int(math.Round(minutes))
	if rounded < 1 {
		return "<1 min"
	}

	if rounded < 60 {
		return fmt.Sprintf("%d min", rounded)
	}

	h, m := rounded/60, rounded%60
	if m == 0 {
		return fmt.Sprintf("%d h", h)
	}

	return fmt.Sprintf("%d h %d min", h, m)
}
