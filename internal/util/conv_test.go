package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustParseUint(t *testing.T) {
	assert.Equal(t, uint(42), MustParseUint("42"))
	assert.Equal(t, uint(0), MustParseUint("not-a-number"))
	assert.Equal(t, uint(0), MustParseUint(""))
}

func TestParseDateParam(t *testing.T) {
	assert.Nil(t, ParseDateParam(""))
	assert.Nil(t, ParseDateParam("yesterday"))

	got := ParseDateParam("2026-03-15")
	require.NotNil(t, got)
	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 15, got.Day())

	got = ParseDateParam("2026-03-15T08:30:00Z")
	require.NotNil(t, got)
	assert.Equal(t, 8, got.Hour())
}
