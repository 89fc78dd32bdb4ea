package entity

// RouteResult is a resolved driving route between one origin and one destination
type RouteResult struct {
	Polyline    []Coordinate `json:"polyline"`
	DistanceKm  float64      `json:"distance_km"`  // Road distance in kilometers, unrounded
	DurationMin float64      `json:"duration_min"` // Travel time in minutes, unrounded
}

// Clone returns a deep copy so callers cannot mutate a held route
func (r *RouteResult) Clone() *RouteResult {
	if r == nil {
		return nil
	}

	cloned := *r
	cloned.Polyline = append([]Coordinate(nil), r.Polyline...)

	return &cloned
}

// RouteKey identifies the request a resolution answers.
// Seq increases with every request a coordinator issues; only the latest Seq is applied.
type RouteKey struct {
	Origin      Coordinate
	Destination Coordinate
	Seq         uint64
}
