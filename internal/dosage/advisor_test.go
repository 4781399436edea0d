package dosage

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdvise_Boundaries(t *testing.T) {
	cases := []struct {
		glucose float64
		want    float64
	}{
		{-15, 0.0},
		{0, 0.0},
		{69.9, 0.0},
		{70, 2.0},
		{119.9, 2.0},
		{120, 4.0},
		{179.9, 4.0},
		{180, 6.0},
		{205, 6.0},
		{249.9, 6.0},
		{250, 8.0},
		{900, 8.0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Advise(tc.glucose), "glucose %v", tc.glucose)
	}
}

func TestAdvise_Deterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, 4.0, Advise(150))
	}
}

func TestAdvise_NaN(t *testing.T) {
	assert.Equal(t, 8.0, Advise(math.NaN()))
}
