package entity

import "time"

// Padding is the screen inset, in pixels, kept clear around a fitted region
type Padding struct {
	Top    int `json:"top" yaml:"top"`
	Right  int `json:"right" yaml:"right"`
	Bottom int `json:"bottom" yaml:"bottom"`
	Left   int `json:"left" yaml:"left"`
}

// ViewportRegion is the camera framing for a set of coordinates
type ViewportRegion struct {
	Center    Coordinate `json:"center"`
	NorthEast Coordinate `json:"north_east"`
	SouthWest Coordinate `json:"south_west"`
	Padding   Padding    `json:"padding"`
}

// CameraCommand is a one-shot instruction to move the map camera.
// It is consumed once and never replayed by later state reads.
type CameraCommand struct {
	Region   ViewportRegion `json:"region"`
	Seq      uint64         `json:"seq"`
	IssuedAt time.Time      `json:"issued_at"`
}
