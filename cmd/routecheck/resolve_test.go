package main

import (
	"testing"

	"locator/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    entity.Coordinate
		wantErr bool
	}{
		{name: "plain", raw: "13.62,123.19", want: entity.Coordinate{Latitude: 13.62, Longitude: 123.19}},
		{name: "spaces", raw: " -33.86 , 151.2 ", want: entity.Coordinate{Latitude: -33.86, Longitude: 151.2}},
		{name: "missing comma", raw: "13.62", wantErr: true},
		{name: "not a number", raw: "north,123", wantErr: true},
		{name: "out of range", raw: "95,10", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCoordinate(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveCmd_RequiresEndpoints(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"resolve", "--from", "13.62,123.19"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--from and --to are required")
}

func TestRootCmd_UnknownCommand(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"download"})

	assert.Error(t, root.Execute())
}
