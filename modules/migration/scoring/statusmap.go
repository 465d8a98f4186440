package scoring

import "strings"

// Status texts arrive from spreadsheets with inconsistent casing and
// whitespace; every lookup normalizes before matching.
func normalizeStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

var packagePercents = map[string]float64{
	"ready":             100,
	"ready for testing": 100,
	"completed":         100,
	"passed":            100,
	"in progress":       50,
	"not started":       0,
	"":                  0,
	"n/a":               0,
}

var testPercents = map[string]float64{
	"ready":       100,
	"completed":   100,
	"passed":      100,
	"pat ok":      100,
	"pat on hold": 75,
	"pat planned": 60,
	"gat ok":      50,
	"in progress": 30,
	"not started": 0,
	"":            0,
}

// PackagePercent maps a packaging status text to its progress percentage.
// Unrecognized statuses count as not started.
func PackagePercent(status string) float64 {
	return packagePercents[normalizeStatus(status)]
}

// TestPercent maps a test status text to its progress percentage.
// Unrecognized statuses count as not started.
func TestPercent(status string) float64 {
	return testPercents[normalizeStatus(status)]
}
