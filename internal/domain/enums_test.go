package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermeability_AllowsOutward(t *testing.T) {
	assert.True(t, Open.AllowsOutward())
	assert.True(t, OsmoticOutward.AllowsOutward())
	assert.False(t, Closed.AllowsOutward())
	assert.False(t, OsmoticInward.AllowsOutward())
}

func TestPermeability_AllowsInward(t *testing.T) {
	assert.True(t, Open.AllowsInward())
	assert.True(t, OsmoticInward.AllowsInward())
	assert.False(t, Closed.AllowsInward())
	assert.False(t, OsmoticOutward.AllowsInward())
}

func TestPermeability_Valid(t *testing.T) {
	for _, p := range []Permeability{Open, Closed, OsmoticInward, OsmoticOutward} {
		assert.True(t, p.Valid())
	}
	assert.False(t, Permeability("").Valid())
	assert.False(t, Permeability("open").Valid(), "values are case-sensitive")
}
