package youtube

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		name     string
		duration string
		want     int64
	}{
		{name: "minutes and seconds", duration: "PT4M13S", want: 4*60 + 13},
		{name: "hours minutes seconds", duration: "PT1H2M3S", want: 3600 + 2*60 + 3},
		{name: "hours only", duration: "PT2H", want: 7200},
		{name: "seconds only", duration: "PT45S", want: 45},
		{name: "zero duration live video", duration: "PT0S", want: 0},
		{name: "empty string", duration: "", want: 0},
		{name: "garbage input", duration: "4m13s", want: 0},
		{name: "long form", duration: "PT11H22M33S", want: 11*3600 + 22*60 + 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseISODuration(tt.duration))
		})
	}
}

// Encoding a known (h,m,s) tuple and decoding it must return the same total.
func TestParseISODuration_RoundTrip(t *testing.T) {
	tuples := []struct{ h, m, s int64 }{
		{0, 0, 0},
		{0, 4, 13},
		{1, 0, 59},
		{10, 33, 7},
	}

	for _, tpl := range tuples {
		encoded := "PT"
		if tpl.h > 0 {
			encoded += fmt.Sprintf("%dH", tpl.h)
		}
		if tpl.m > 0 {
			encoded += fmt.Sprintf("%dM", tpl.m)
		}
		if tpl.s > 0 || (tpl.h == 0 && tpl.m == 0) {
			encoded += fmt.Sprintf("%dS", tpl.s)
		}
		want := tpl.h*3600 + tpl.m*60 + tpl.s
		assert.Equal(t, want, ParseISODuration(encoded), "encoded %s", encoded)
	}
}
