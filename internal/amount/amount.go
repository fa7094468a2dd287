package amount

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Custom is the unit token used when the text after the number is not a known unit.
const Custom = "custom"

// Parsed is the structured form of a free-text amount. Empty strings stand for "no value".
type Parsed struct {
	Qty        *float64 `json:"qty"`
	Unit       string   `json:"unit"`
	CustomUnit string   `json:"customUnit"`
}

// Structured reports whether both a quantity and a unit were recognised
func (p Parsed) Structured() bool {
	return p.Qty != nil && p.Unit != ""
}

// UnitKey is the unit the amount is aggregated under. Custom units use their own text.
func (p Parsed) UnitKey() string {
	if p.Unit == Custom {
		return strings.ToLower(strings.TrimSpace(p.CustomUnit))
	}
	return p.Unit
}

// Group is a labelled set of unit tokens as offered in a unit picker
type Group struct {
	Label string
	Units []string
}

// Groups is the fixed unit list
var Groups = []Group{
	{Label: "Common", Units: []string{"pcs", "pack", "can", "jar", "bottle", "bag", "box", "tin"}},
	{Label: "Weight", Units: []string{"g", "kg", "mg", "oz", "lb"}},
	{Label: "Volume", Units: []string{"ml", "l", "cl", "cup", "pint"}},
	{Label: "Kitchen", Units: []string{"tsp", "tbsp", "pinch", "dash", "handful", "clove", "slice", "bunch", "sprig", "knob"}},
	{Label: "Other", Units: []string{Custom}},
}

var aliases = map[string]string{
	"piece": "pcs", "pieces": "pcs", "pc": "pcs", "pcs.": "pcs",
	"packs": "pack", "packet": "pack", "packets": "pack",
	"cans": "can", "jars": "jar", "bottles": "bottle", "bags": "bag", "boxes": "box", "tins": "tin",
	"gram": "g", "grams": "g", "gr": "g", "gm": "g",
	"kilogram": "kg", "kilograms": "kg", "kgs": "kg", "kilo": "kg", "kilos": "kg",
	"milligram": "mg", "milligrams": "mg",
	"ounce": "oz", "ounces": "oz",
	"pound": "lb", "pounds": "lb", "lbs": "lb",
	"milliliter": "ml", "milliliters": "ml", "millilitre": "ml", "millilitres": "ml", "mls": "ml",
	"liter": "l", "liters": "l", "litre": "l", "litres": "l", "ltr": "l",
	"centiliter": "cl", "centilitre": "cl", "centiliters": "cl", "centilitres": "cl",
	"cups": "cup", "pints": "pint",
	"teaspoon": "tsp", "teaspoons": "tsp", "tsps": "tsp",
	"tablespoon": "tbsp", "tablespoons": "tbsp", "tbsps": "tbsp", "tbs": "tbsp",
	"pinches": "pinch", "dashes": "dash", "handfuls": "handful",
	"cloves": "clove", "slices": "slice", "bunches": "bunch", "sprigs": "sprig", "knobs": "knob",
}

var known = func() map[string]bool {
	m := make(map[string]bool)
	for _, g := range Groups {
		for _, u := range g.Units {
			if u != Custom {
				m[u] = true
			}
		}
	}
	return m
}()

// leading number: mixed ("1 1/2"), fraction ("1/2"), decimal (".5", "1.5") or integer
var numberRe = regexp.MustCompile(`^(\d+\s+\d+/\d+|\d+/\d+|\d*\.\d+|\d+)\s*(.*)$`)

// NormalizeUnit maps a unit spelling to its canonical token
func NormalizeUnit(raw string) (string, bool) {
	u := strings.ToLower(strings.TrimSpace(raw))
	u = strings.TrimSuffix(u, ".")
	if u == "" {
		return "", false
	}
	if known[u] {
		return u, true
	}
	if c, ok := aliases[u]; ok {
		return c, true
	}
	return "", false
}

// Parse converts free text such as "1 1/2 cups" or "200g" into its structured form
func Parse(text string) Parsed {
	t := strings.TrimSpace(text)
	if t == "" {
		return Parsed{}
	}

	m := numberRe.FindStringSubmatch(t)
	if m == nil {
		if u, ok := NormalizeUnit(t); ok {
			return Parsed{Unit: u}
		}
		return Parsed{}
	}

	qty, ok := parseNumber(m[1])
	if !ok {
		return Parsed{}
	}

	rest := strings.TrimSpace(m[2])
	if rest == "" {
		return Parsed{Qty: &qty}
	}
	if u, ok := NormalizeUnit(rest); ok {
		return Parsed{Qty: &qty, Unit: u}
	}
	return Parsed{Qty: &qty, Unit: Custom, CustomUnit: rest}
}

func parseNumber(s string) (float64, bool) {
	fields := strings.Fields(s)
	if len(fields) == 2 {
		whole, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return 0, false
		}
		frac, ok := parseFraction(fields[1])
		if !ok {
			return 0, false
		}
		return whole + frac, true
	}
	if strings.Contains(s, "/") {
		return parseFraction(s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseFraction(s string) (float64, bool) {
	num, den, found := strings.Cut(s, "/")
	if !found {
		return 0, false
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0, false
	}
	return n / d, true
}

// Build renders "<qty> <unit>" and omits whichever part is empty.
// When unit is Custom the customUnit text is rendered instead.
func Build(qty *float64, unit, customUnit string) string {
	parts := make([]string, 0, 2)
	if qty != nil {
		parts = append(parts, strconv.FormatFloat(*qty, 'f', -1, 64))
	}
	u := unit
	if unit == Custom {
		u = strings.TrimSpace(customUnit)
	}
	if u != "" {
		parts = append(parts, u)
	}
	return strings.Join(parts, " ")
}

// Format renders an aggregated quantity rounded to two decimals
func Format(qty float64) string {
	return strconv.FormatFloat(math.Round(qty*100)/100, 'f', -1, 64)
}
