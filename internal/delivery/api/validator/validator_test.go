package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type positionRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

func ptr(v float64) *float64 { return &v }

func TestValidator_Validate(t *testing.T) {
	v := New()

	tests := []struct {
		name       string
		req        positionRequest
		wantFields map[string]string
	}{
		{name: "valid", req: positionRequest{Latitude: ptr(13.62), Longitude: ptr(123.19)}},
		{name: "zero is a valid coordinate", req: positionRequest{Latitude: ptr(0), Longitude: ptr(0)}},
		{name: "missing", req: positionRequest{}, wantFields: map[string]string{"latitude": "required", "longitude": "required"}},
		{name: "out of range", req: positionRequest{Latitude: ptr(91), Longitude: ptr(-181)}, wantFields: map[string]string{"latitude": "latitude", "longitude": "longitude"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			if tt.wantFields == nil {
				assert.NoError(t, err)

				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantFields, FieldErrors(err))
		})
	}
}

func TestFieldErrors_OtherError(t *testing.T) {
	assert.Nil(t, FieldErrors(assert.AnError))
}
