package entity

// ErrorKind classifies the failures surfaced to the map screen
type ErrorKind string

const (
	ErrorKindPermissionDenied      ErrorKind = "PERMISSION_DENIED"
	ErrorKindLocationUnavailable   ErrorKind = "LOCATION_UNAVAILABLE"
	ErrorKindCatalogFetchFailed    ErrorKind = "CATALOG_FETCH_FAILED"
	ErrorKindRouteResolutionFailed ErrorKind = "ROUTE_RESOLUTION_FAILED"
	ErrorKindEmptyCoordinateSet    ErrorKind = "EMPTY_COORDINATE_SET"
)

// Valid reports whether k is one of the known kinds
func (k ErrorKind) Valid() bool {
	switch k {
	case ErrorKindPermissionDenied, ErrorKindLocationUnavailable, ErrorKindCatalogFetchFailed,
		ErrorKindRouteResolutionFailed, ErrorKindEmptyCoordinateSet:
		return true
	default:
		return false
	}
}
