package registry

import "strings"

// cityVendors is the fixed city→vendor-list mapping the identity provider
// resolves seller storefronts against. A seller's vendor identity must
// always be an entry for their declared city.
var cityVendors = map[string][]string{
	"Mumbai":    {"Sharma Electronics", "Patel Appliances", "Metro Gadgets"},
	"Delhi":     {"Verma Traders", "Capital Electronics", "Gupta & Sons"},
	"Bangalore": {"Nandi Electronics", "Silicon Appliances", "Iyer Home Store"},
	"Pune":      {"Deccan Appliances", "Joshi Electricals"},
	"Hyderabad": {"Charminar Electronics", "Pearl City Appliances"},
	"Chennai":   {"Marina Traders", "Kaveri Electronics"},
}

// Cities lists the cities the marketplace operates in.
func Cities() []string {
	cities := make([]string, 0, len(cityVendors))
	for city := range cityVendors {
		cities = append(cities, city)
	}
	return cities
}

// VendorsIn returns the registered vendor names for a city. The returned
// slice is a copy.
func VendorsIn(city string) []string {
	vendors, ok := cityVendors[canonicalCity(city)]
	if !ok {
		return nil
	}
	return append([]string(nil), vendors...)
}

// IsRegistered reports whether vendorName is a registry entry for city.
func IsRegistered(city, vendorName string) bool {
	for _, name := range VendorsIn(city) {
		if name == vendorName {
			return true
		}
	}
	return false
}

// canonicalCity resolves case-insensitive city input to the registry key.
func canonicalCity(city string) string {
	for key := range cityVendors {
		if strings.EqualFold(key, city) {
			return key
		}
	}
	return city
}
