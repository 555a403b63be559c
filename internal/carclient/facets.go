package carclient

import (
	"sort"
	"strconv"
	"strings"
)

// AllLabel is the sentinel shown at the head of every option list. It
// only exists at the display boundary; selections use Choice instead of
// comparing against this string.
const AllLabel = "All"

// Choice is a facet selection: either "no constraint" or a specific
// value. The zero value is Any.
type Choice struct {
	value string
	set   bool
}

// Any imposes no constraint on its dimension.
func Any() Choice { return Choice{} }

// Of selects a specific facet value. Of(AllLabel) collapses to Any.
func Of(v string) Choice {
	if v == "" || v == AllLabel {
		return Choice{}
	}
	return Choice{value: v, set: true}
}

func (c Choice) IsAny() bool { return !c.set }

// Value returns the selected value and whether one is set.
func (c Choice) Value() (string, bool) { return c.value, c.set }

func (c Choice) String() string {
	if !c.set {
		return AllLabel
	}
	return c.value
}

// Dimension identifies one filterable facet, in the fixed filter order.
// The order matters twice: filters apply in it, and changing a
// dimension resets every cascading dimension after it.
type Dimension int

const (
	DimMake Dimension = iota
	DimYear
	DimFuelType
	DimBodyType
	DimLocation
	DimPrice
)

func (d Dimension) String() string {
	switch d {
	case DimMake:
		return "make"
	case DimYear:
		return "year"
	case DimFuelType:
		return "fuel_type"
	case DimBodyType:
		return "body_type"
	case DimLocation:
		return "location"
	case DimPrice:
		return "price_range"
	}
	return "unknown"
}

// Selection is the active filter state: a free-text search term plus
// one Choice per dimension.
type Selection struct {
	Search   string
	Make     Choice
	Year     Choice
	FuelType Choice
	BodyType Choice
	Location Choice
	Price    Choice
}

// Get returns the choice for dim.
func (s Selection) Get(dim Dimension) Choice {
	switch dim {
	case DimMake:
		return s.Make
	case DimYear:
		return s.Year
	case DimFuelType:
		return s.FuelType
	case DimBodyType:
		return s.BodyType
	case DimLocation:
		return s.Location
	case DimPrice:
		return s.Price
	}
	return Any()
}

// With returns the selection with dim set to c and every cascading
// dimension after dim reset to Any. Location is the last cascading
// dimension; the price bucket is never auto-reset.
func (s Selection) With(dim Dimension, c Choice) Selection {
	out := s
	switch dim {
	case DimMake:
		out.Make = c
		out.Year, out.FuelType, out.BodyType, out.Location = Any(), Any(), Any(), Any()
	case DimYear:
		out.Year = c
		out.FuelType, out.BodyType, out.Location = Any(), Any(), Any()
	case DimFuelType:
		out.FuelType = c
		out.BodyType, out.Location = Any(), Any()
	case DimBodyType:
		out.BodyType = c
		out.Location = Any()
	case DimLocation:
		out.Location = c
	case DimPrice:
		out.Price = c
	}
	return out
}

// Clear returns an empty selection (everything Any, no search).
func (s Selection) Clear() Selection { return Selection{} }

// ActiveCount reports how many constraints are set, search included.
func (s Selection) ActiveCount() int {
	n := 0
	if strings.TrimSpace(s.Search) != "" {
		n++
	}
	for _, c := range []Choice{s.Make, s.Year, s.FuelType, s.BodyType, s.Location, s.Price} {
		if !c.IsAny() {
			n++
		}
	}
	return n
}

// PriceBucket is a named price range. A nil Max means unbounded above.
// Both bounds are inclusive: the source application always compared
// price <= max, and that behavior is kept for parity.
type PriceBucket struct {
	Label string
	Min   float64
	Max   *float64
}

// Contains reports whether price falls in the bucket.
func (b PriceBucket) Contains(price float64) bool {
	if price < b.Min {
		return false
	}
	return b.Max == nil || price <= *b.Max
}

func bound(v float64) *float64 { return &v }

// PriceBuckets is the fixed catalog of selectable price ranges.
// ("Peste 200k" is Romanian for "above 200k".)
func PriceBuckets() []PriceBucket {
	return []PriceBucket{
		{Label: "Sub 25k", Min: 0, Max: bound(25000)},
		{Label: "25k - 50k", Min: 25000, Max: bound(50000)},
		{Label: "50k - 100k", Min: 50000, Max: bound(100000)},
		{Label: "100k - 200k", Min: 100000, Max: bound(200000)},
		{Label: "Peste 200k", Min: 200000, Max: nil},
	}
}

func findBucket(label string) (PriceBucket, bool) {
	for _, b := range PriceBuckets() {
		if b.Label == label {
			return b, true
		}
	}
	return PriceBucket{}, false
}

// Options holds the per-dimension valid values, each list headed by the
// "All" sentinel.
type Options struct {
	Makes       []string
	Years       []string
	FuelTypes   []string
	BodyTypes   []string
	Locations   []string
	PriceRanges []string
}

// FacetResult is the output of one facet computation: the filtered
// listing sequence (input order preserved) and the narrowed options.
type FacetResult struct {
	Cars    []Car
	Options Options
}

// ApplyFacets filters cars by sel and computes per-dimension option
// lists. Filters apply in the fixed order search, make, year, fuel,
// body, location, price. Narrowing is directional: the make options
// always come from the unfiltered set, and every other dimension's
// options reflect only the filters strictly before it, so relaxing a
// downstream filter never shuffles the upstream ones. Pure function of
// its inputs.
func ApplyFacets(cars []Car, sel Selection) FacetResult {
	working := cars

	// search
	if term := strings.TrimSpace(sel.Search); term != "" {
		q := strings.ToLower(term)
		working = keep(working, func(c Car) bool {
			return strings.Contains(strings.ToLower(c.Make), q) ||
				strings.Contains(strings.ToLower(c.Model), q) ||
				strings.Contains(strings.ToLower(c.Make+" "+c.Model), q)
		})
	}

	makes := optionList(cars, func(c Car) string { return c.Make }, false)

	// make
	if v, ok := sel.Make.Value(); ok {
		working = keep(working, func(c Car) bool { return c.Make == v })
	}
	years := optionList(working, func(c Car) string { return strconv.Itoa(c.Year) }, true)

	// year
	if v, ok := sel.Year.Value(); ok {
		working = keep(working, func(c Car) bool { return strconv.Itoa(c.Year) == v })
	}
	fuels := optionList(working, func(c Car) string { return c.FuelType }, false)

	// fuel type
	if v, ok := sel.FuelType.Value(); ok {
		working = keep(working, func(c Car) bool { return c.FuelType == v })
	}
	bodies := optionList(working, func(c Car) string { return c.BodyType }, false)

	// body type
	if v, ok := sel.BodyType.Value(); ok {
		working = keep(working, func(c Car) bool { return c.BodyType == v })
	}
	locations := optionList(working, locationKey, false)

	// location
	if v, ok := sel.Location.Value(); ok {
		working = keep(working, func(c Car) bool { return strings.Contains(c.Location, v) })
	}

	// price bucket
	if v, ok := sel.Price.Value(); ok {
		if bucket, found := findBucket(v); found {
			working = keep(working, func(c Car) bool { return bucket.Contains(c.Price) })
		}
	}

	priceRanges := make([]string, 0, len(PriceBuckets())+1)
	priceRanges = append(priceRanges, AllLabel)
	for _, b := range PriceBuckets() {
		priceRanges = append(priceRanges, b.Label)
	}

	return FacetResult{
		Cars: working,
		Options: Options{
			Makes:       makes,
			Years:       years,
			FuelTypes:   fuels,
			BodyTypes:   bodies,
			Locations:   locations,
			PriceRanges: priceRanges,
		},
	}
}

// locationKey is the facet key for a listing location: the first
// comma-delimited segment, trimmed ("Cluj-Napoca, Cluj" -> "Cluj-Napoca").
func locationKey(c Car) string {
	return strings.TrimSpace(strings.SplitN(c.Location, ",", 2)[0])
}

func keep(cars []Car, pred func(Car) bool) []Car {
	out := make([]Car, 0, len(cars))
	for _, c := range cars {
		if pred(c) {
			out = append(out, c)
		}
	}
	return out
}

// optionList collects distinct values, sorts them (numeric descending
// or lexicographic ascending), and prepends the All sentinel.
func optionList(cars []Car, key func(Car) string, numericDesc bool) []string {
	seen := make(map[string]struct{}, len(cars))
	values := make([]string, 0, len(cars))
	for _, c := range cars {
		v := key(c)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	if numericDesc {
		sort.Slice(values, func(i, j int) bool {
			a, _ := strconv.Atoi(values[i])
			b, _ := strconv.Atoi(values[j])
			return a > b
		})
	} else {
		sort.Strings(values)
	}
	return append([]string{AllLabel}, values...)
}
