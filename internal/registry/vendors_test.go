package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVendorsIn(t *testing.T) {
	vendors := VendorsIn("Mumbai")
	require.NotEmpty(t, vendors)
	assert.Contains(t, vendors, "Sharma Electronics")

	assert.Nil(t, VendorsIn("Atlantis"))

	// Case-insensitive city lookup.
	assert.Equal(t, vendors, VendorsIn("mumbai"))
}

func TestVendorsInReturnsCopy(t *testing.T) {
	first := VendorsIn("Pune")
	require.NotEmpty(t, first)
	first[0] = "tampered"

	assert.NotContains(t, VendorsIn("Pune"), "tampered")
}

func TestIsRegistered(t *testing.T) {
	tests := []struct {
		name   string
		city   string
		vendor string
		want   bool
	}{
		{"registered vendor", "Mumbai", "Sharma Electronics", true},
		{"registered vendor other city key case", "delhi", "Verma Traders", true},
		{"vendor of another city", "Delhi", "Sharma Electronics", false},
		{"unknown vendor", "Mumbai", "Nonexistent Traders", false},
		{"unknown city", "Atlantis", "Sharma Electronics", false},
		{"vendor name is case sensitive", "Mumbai", "sharma electronics", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRegistered(tt.city, tt.vendor))
		})
	}
}

func TestCities(t *testing.T) {
	cities := Cities()
	assert.Len(t, cities, 6)
	assert.Contains(t, cities, "Mumbai")
	assert.Contains(t, cities, "Chennai")
}
