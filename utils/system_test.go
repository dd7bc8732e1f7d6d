package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNonFinite(t *testing.T) {
	assert.False(t, NonFinite(1.))
	assert.True(t, NonFinite(math.NaN()))
	assert.True(t, NonFinite(math.Inf(-1)))
	assert.True(t, NonFinite([]float64{1, 2, math.Inf(1)}))
	assert.False(t, NonFinite([]float64{1, 2}))
	var p *float64
	assert.False(t, NonFinite(p))
	nan := math.NaN()
	assert.True(t, NonFinite(&nan))
	assert.False(t, NonFinite("NaN"))
	assert.Contains(t, GetMemUsage(), "Alloc =")
}
