// Package roster provides the entrant catalog and the cosmetic arena themes.
// Themes only affect colors; simulation math never reads them.
package roster

import "math/rand"

// Entrant is one competitor in a match.
type Entrant struct {
	Code  string `json:"code"`  // Stable id, e.g. ISO country code
	Name  string `json:"name"`  // Display name
	Color string `json:"color"` // Hex color for token and effect rendering
}

// catalog is the built-in entrant pool, in no particular order.
var catalog = []Entrant{
	{"BR", "Brazil", "#009c3b"},
	{"DE", "Germany", "#dd0000"},
	{"JP", "Japan", "#bc002d"},
	{"FR", "France", "#0055a4"},
	{"IT", "Italy", "#008c45"},
	{"ES", "Spain", "#aa151b"},
	{"AR", "Argentina", "#74acdf"},
	{"GB", "United Kingdom", "#c8102e"},
	{"US", "United States", "#3c3b6e"},
	{"MX", "Mexico", "#006341"},
	{"CA", "Canada", "#ff0000"},
	{"NL", "Netherlands", "#ff9b00"},
	{"PT", "Portugal", "#006600"},
	{"SE", "Sweden", "#006aa7"},
	{"NO", "Norway", "#ba0c2f"},
	{"FI", "Finland", "#002f6c"},
	{"DK", "Denmark", "#c8102e"},
	{"PL", "Poland", "#dc143c"},
	{"CZ", "Czechia", "#11457e"},
	{"AT", "Austria", "#ed2939"},
	{"CH", "Switzerland", "#da291c"},
	{"BE", "Belgium", "#fdda24"},
	{"IE", "Ireland", "#169b62"},
	{"GR", "Greece", "#0d5eaf"},
	{"TR", "Turkey", "#e30a17"},
	{"AU", "Australia", "#00008b"},
	{"NZ", "New Zealand", "#00247d"},
	{"KR", "South Korea", "#003478"},
	{"CN", "China", "#de2910"},
	{"IN", "India", "#ff9933"},
	{"ZA", "South Africa", "#007749"},
	{"EG", "Egypt", "#ce1126"},
	{"NG", "Nigeria", "#008751"},
	{"CO", "Colombia", "#fcd116"},
	{"CL", "Chile", "#d52b1e"},
	{"PE", "Peru", "#d91023"},
	{"UY", "Uruguay", "#7b9fd0"},
	{"HR", "Croatia", "#ff0000"},
	{"RS", "Serbia", "#c6363c"},
	{"UA", "Ukraine", "#ffd700"},
	{"IS", "Iceland", "#02529c"},
	{"MA", "Morocco", "#c1272d"},
	{"SN", "Senegal", "#00853f"},
	{"GH", "Ghana", "#ef3340"},
	{"TH", "Thailand", "#a51931"},
	{"VN", "Vietnam", "#da251d"},
	{"ID", "Indonesia", "#ce1126"},
	{"PH", "Philippines", "#0038a8"},
	{"SA", "Saudi Arabia", "#006c35"},
	{"QA", "Qatar", "#8a1538"},
}

// Size returns the number of entrants in the built-in catalog.
func Size() int {
	return len(catalog)
}

// Pick returns n distinct entrants drawn randomly from the catalog.
// n is clamped to the catalog size.
func Pick(n int) []Entrant {
	if n < 0 {
		n = 0
	}
	if n > len(catalog) {
		n = len(catalog)
	}
	perm := rand.Perm(len(catalog))
	picked := make([]Entrant, n)
	for i := 0; i < n; i++ {
		picked[i] = catalog[perm[i]]
	}
	return picked
}

// Lookup returns the entrant with the given code.
func Lookup(code string) (Entrant, bool) {
	for _, e := range catalog {
		if e.Code == code {
			return e, true
		}
	}
	return Entrant{}, false
}

// Theme is a cosmetic arena palette. The elimination color hint comes from
// the theme so external effect layers match the arena's look.
type Theme struct {
	Name          string `json:"name"`
	RingColor     string `json:"ringColor"`
	EliminateHint string `json:"eliminateHint"` // Color hint attached to elimination events
}

var themes = []Theme{
	{Name: "classic", RingColor: "#e0e0e0", EliminateHint: "#ff5252"},
	{Name: "lava", RingColor: "#ff7043", EliminateHint: "#ffab40"},
	{Name: "ocean", RingColor: "#4fc3f7", EliminateHint: "#80d8ff"},
	{Name: "void", RingColor: "#9575cd", EliminateHint: "#b388ff"},
}

// DefaultTheme returns the classic theme.
func DefaultTheme() Theme {
	return themes[0]
}

// ThemeByName returns the named theme, or the default if unknown.
func ThemeByName(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return DefaultTheme()
}

// NextTheme returns the theme after the named one, wrapping around.
// Useful for cycling themes from a key binding.
func NextTheme(name string) Theme {
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)]
		}
	}
	return DefaultTheme()
}
