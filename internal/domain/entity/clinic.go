package entity

// Clinic is a clinic record from the clinic directory.
// Location is nil when the clinic has not been geocoded.
type Clinic struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Address     string      `json:"address"`
	ContactInfo string      `json:"contact_info,omitempty"`
	Location    *Coordinate `json:"location"`
}

// Mappable reports whether the clinic can be drawn on the map and routed to
func (c Clinic) Mappable() bool {
	return c.Location != nil && c.Location.Valid()
}

// FilterMappable returns the clinics that carry a usable location, preserving order
func FilterMappable(clinics []Clinic) []Clinic {
	mappable := make([]Clinic, 0, len(clinics))
	for _, clinic := range clinics {
		if clinic.Mappable() {
			mappable = append(mappable, clinic)
		}
	}

	return mappable
}
