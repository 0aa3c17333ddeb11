package utils

// Coarse, approximate location derived from the client's reported timezone.
// This is deliberately not real geolocation; it only has to look right on the
// visitors dashboard.
var timezoneLocations = map[string]struct {
	Location    string
	CountryCode string
}{
	"America/New_York":    {"New York, USA", "US"},
	"America/Chicago":     {"Chicago, USA", "US"},
	"America/Los_Angeles": {"Los Angeles, USA", "US"},
	"America/Toronto":     {"Toronto, Canada", "CA"},
	"America/Sao_Paulo":   {"São Paulo, Brazil", "BR"},
	"America/Mexico_City": {"Mexico City, Mexico", "MX"},
	"Europe/London":       {"London, UK", "GB"},
	"Europe/Paris":        {"Paris, France", "FR"},
	"Europe/Berlin":       {"Berlin, Germany", "DE"},
	"Europe/Madrid":       {"Madrid, Spain", "ES"},
	"Europe/Rome":         {"Rome, Italy", "IT"},
	"Europe/Amsterdam":    {"Amsterdam, Netherlands", "NL"},
	"Europe/Stockholm":    {"Stockholm, Sweden", "SE"},
	"Europe/Warsaw":       {"Warsaw, Poland", "PL"},
	"Europe/Istanbul":     {"Istanbul, Turkey", "TR"},
	"Asia/Tokyo":          {"Tokyo, Japan", "JP"},
	"Asia/Shanghai":       {"Shanghai, China", "CN"},
	"Asia/Kolkata":        {"Mumbai, India", "IN"},
	"Asia/Karachi":        {"Karachi, Pakistan", "PK"},
	"Asia/Dubai":          {"Dubai, UAE", "AE"},
	"Asia/Riyadh":         {"Riyadh, Saudi Arabia", "SA"},
	"Asia/Dhaka":          {"Dhaka, Bangladesh", "BD"},
	"Asia/Singapore":      {"Singapore", "SG"},
	"Asia/Bangkok":        {"Bangkok, Thailand", "TH"},
	"Asia/Jakarta":        {"Jakarta, Indonesia", "ID"},
	"Australia/Sydney":    {"Sydney, Australia", "AU"},
	"Africa/Cairo":        {"Cairo, Egypt", "EG"},
	"Africa/Lagos":        {"Lagos, Nigeria", "NG"},
	"Africa/Johannesburg": {"Johannesburg, South Africa", "ZA"},
}

// LocationForTimezone maps an IANA timezone to a display location and ISO
// country code. Unknown or empty timezones fall back to an explicit unknown.
func LocationForTimezone(timezone string) (location, countryCode string) {
	if loc, ok := timezoneLocations[timezone]; ok {
		return loc.Location, loc.CountryCode
	}
	return "Unknown Location", "XX"
}
