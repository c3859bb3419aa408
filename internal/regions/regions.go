package regions

import "strings"

// All is the closed set of service areas a technician can cover.
var All = []string{
	"Auckland",
	"Wellington",
	"Christchurch",
	"Hamilton",
	"Tauranga",
	"Dunedin",
	"Palmerston North",
	"Napier",
	"Hastings",
	"Nelson",
	"Rotorua",
	"New Plymouth",
	"Whangarei",
	"Invercargill",
	"Whanganui",
	"Gisborne",
}

var byFolded = func() map[string]string {
	m := make(map[string]string, len(All))
	for _, r := range All {
		m[strings.ToLower(r)] = r
	}
	return m
}()

// Normalize case-folds s against the known regions and returns the
// canonical display name.
func Normalize(s string) (string, bool) {
	r, ok := byFolded[strings.ToLower(strings.TrimSpace(s))]
	return r, ok
}

func IsValid(s string) bool {
	_, ok := Normalize(s)
	return ok
}
