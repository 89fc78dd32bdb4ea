package entity

// SelectionState is what the map screen observes: the current origin, the selected clinic,
// and the route between them with its loading and error flags.
type SelectionState struct {
	Origin           *Coordinate  `json:"origin"`
	SelectedClinicID *string      `json:"selected_clinic_id"`
	Route            *RouteResult `json:"route"`
	LoadingRoute     bool         `json:"loading_route"`
	RouteError       *ErrorKind   `json:"route_error"`
}

// Clone returns a deep copy safe to hand to another goroutine
func (s SelectionState) Clone() SelectionState {
	cloned := SelectionState{
		Route:        s.Route.Clone(),
		LoadingRoute: s.LoadingRoute,
	}
	if s.Origin != nil {
		origin := *s.Origin
		cloned.Origin = &origin
	}
	if s.SelectedClinicID != nil {
		id := *s.SelectedClinicID
		cloned.SelectedClinicID = &id
	}
	if s.RouteError != nil {
		kind := *s.RouteError
		cloned.RouteError = &kind
	}

	return cloned
}
