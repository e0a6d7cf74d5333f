package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValid(MPS))
	assert.True(t, IsValid(MPH))
	assert.True(t, IsValid(KPH))
	assert.False(t, IsValid("knots"))
	assert.False(t, IsValid(""))
}

func TestConvertSpeed(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 10, ConvertSpeed(10, MPS), 1e-12)
	assert.InDelta(t, 22.369362920544, ConvertSpeed(10, MPH), 1e-9)
	assert.InDelta(t, 36, ConvertSpeed(10, KPH), 1e-9)
	// Unknown units pass through.
	assert.InDelta(t, 10, ConvertSpeed(10, "furlongs"), 1e-12)
}
