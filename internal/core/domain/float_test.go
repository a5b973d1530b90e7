package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloat_Validate(t *testing.T) {
	tests := []struct {
		name    string
		float   Float
		wantErr bool
	}{
		{"valid", Float{ID: "2902300", Lat: 15.5, Lng: 65.1}, false},
		{"missing id", Float{Lat: 15.5, Lng: 65.1}, true},
		{"lat too high", Float{ID: "x", Lat: 91, Lng: 0}, true},
		{"lat too low", Float{ID: "x", Lat: -90.5, Lng: 0}, true},
		{"lng out of range", Float{ID: "x", Lat: 0, Lng: 181}, true},
		{"NaN latitude", Float{ID: "x", Lat: math.NaN(), Lng: 0}, true},
		{"NaN longitude", Float{ID: "x", Lat: 0, Lng: math.NaN()}, true},
		{"boundaries", Float{ID: "x", Lat: -90, Lng: 180}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.float.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSeaFromLocation(t *testing.T) {
	assert.Equal(t, SeaArabian, SeaFromLocation("Off Oman, Arabian Sea"))
	assert.Equal(t, SeaArabian, SeaFromLocation("ARABIAN basin"))
	assert.Equal(t, SeaBengal, SeaFromLocation("Off Chennai"))
	assert.Equal(t, SeaBengal, SeaFromLocation(""))
}

func TestRange_Clamp(t *testing.T) {
	r := MustRange(ParamTemperature)
	assert.Equal(t, 26.51, r.Clamp(10))
	assert.Equal(t, 29.27, r.Clamp(40))
	assert.Equal(t, 27.0, r.Clamp(27))
	assert.True(t, r.Contains(27))
	assert.False(t, r.Contains(30))

	_, ok := RangeOf("depth_of_soul")
	assert.False(t, ok)
	assert.Panics(t, func() { MustRange("depth_of_soul") })
}

func TestParameters_ReturnsCopy(t *testing.T) {
	params := Parameters()
	params[0].Name = "mutated"
	assert.NotEqual(t, Parameter("mutated"), Parameters()[0].Name)
}
