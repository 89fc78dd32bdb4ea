// Package geo decodes route geometries returned by directions services into coordinates.
package geo

import (
	"encoding/json"
	"strings"

	"locator/internal/domain/entity"
	"locator/internal/errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/twpayne/go-polyline"
)

// Format names the geometry encoding requested from a directions service
type Format string

const (
	FormatGeoJSON   Format = "geojson"
	FormatPolyline  Format = "polyline"
	FormatPolyline6 Format = "polyline6"
)

var (
	// ErrEmptyGeometry is returned when a geometry decodes to zero points
	ErrEmptyGeometry = errors.New("geometry has no points")
	// ErrUnsupportedFormat is returned for an unknown geometry encoding
	ErrUnsupportedFormat = errors.New("unsupported geometry format")
)

var polyline6 = polyline.Codec{Dim: 2, Scale: 1e6}

// ParseFormat normalises a configured geometry format, defaulting to geojson
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatGeoJSON:
		return FormatGeoJSON, nil
	case FormatPolyline:
		return FormatPolyline, nil
	case FormatPolyline6:
		return FormatPolyline6, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedFormat, "format %q", s)
	}
}

// DecodeLineString decodes raw into coordinates in source order.
// Every decoded position must be a valid coordinate and at least one is required.
func DecodeLineString(raw json.RawMessage, format Format) ([]entity.Coordinate, error) {
	var (
		points []orb.Point
		err    error
	)

	switch format {
	case FormatGeoJSON, "":
		points, err = decodeGeoJSON(raw)
	case FormatPolyline:
		points, err = decodeEncoded(raw, polyline.DecodeCoords)
	case FormatPolyline6:
		points, err = decodeEncoded(raw, polyline6.DecodeCoords)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "format %q", format)
	}
	if err != nil {
		return nil, err
	}

	if len(points) == 0 {
		return nil, errors.WithStack(ErrEmptyGeometry)
	}

	coords := make([]entity.Coordinate, 0, len(points))
	for i, p := range points {
		c := entity.CoordinateFromPoint(p)
		if !c.Valid() {
			return nil, errors.Wrapf(entity.ErrInvalidCoordinate, "geometry position %d", i)
		}
		coords = append(coords, c)
	}

	return coords, nil
}

func decodeGeoJSON(raw json.RawMessage) ([]orb.Point, error) {
	if len(raw) == 0 {
		return nil, errors.WithStack(ErrEmptyGeometry)
	}

	if err := checkPositions(raw); err != nil {
		return nil, err
	}

	geometry, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode geojson geometry")
	}

	switch g := geometry.Geometry().(type) {
	case orb.LineString:
		return []orb.Point(g), nil
	case orb.MultiLineString:
		var points []orb.Point
		for _, ls := range g {
			points = append(points, ls...)
		}

		return points, nil
	case orb.Point:
		return []orb.Point{g}, nil
	default:
		return nil, errors.Errorf("unexpected geometry type %s", geometry.Type)
	}
}

// checkPositions rejects positions with fewer than two values, which orb would zero-fill
func checkPositions(raw json.RawMessage) error {
	var shape struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	}
	if err := json.Unmarshal(raw, &shape); err != nil {
		return errors.Wrap(err, "failed to decode geojson geometry")
	}

	var lines [][][]float64
	switch shape.Type {
	case "Point":
		var position []float64
		if err := json.Unmarshal(shape.Coordinates, &position); err != nil {
			return errors.Wrap(err, "malformed point coordinates")
		}
		lines = [][][]float64{{position}}
	case "LineString":
		var line [][]float64
		if err := json.Unmarshal(shape.Coordinates, &line); err != nil {
			return errors.Wrap(err, "malformed line string coordinates")
		}
		lines = [][][]float64{line}
	case "MultiLineString":
		if err := json.Unmarshal(shape.Coordinates, &lines); err != nil {
			return errors.Wrap(err, "malformed multi line string coordinates")
		}
	default:
		// other types are rejected once decoded
		return nil
	}

	for _, line := range lines {
		for i, position := range line {
			if len(position) < 2 {
				return errors.Errorf("geojson position %d has %d values, want at least 2", i, len(position))
			}
		}
	}

	return nil
}

func decodeEncoded(raw json.RawMessage, decode func([]byte) ([][]float64, []byte, error)) ([]orb.Point, error) {
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return nil, errors.Wrap(err, "encoded geometry is not a string")
	}

	coords, rest, err := decode([]byte(encoded))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode polyline")
	}
	if len(rest) != 0 {
		return nil, errors.Errorf("polyline has %d trailing bytes", len(rest))
	}

	points := make([]orb.Point, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			return nil, errors.New("polyline position has fewer than two values")
		}
		// polylines are latitude-first
		points = append(points, orb.Point{c[1], c[0]})
	}

	return points, nil
}
