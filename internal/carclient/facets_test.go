package carclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fleet() []Car {
	return []Car{
		{ID: "1", Make: "Dacia", Model: "Logan", Year: 2020, Price: 20000, FuelType: "Petrol", BodyType: "Sedan", Location: "Cluj-Napoca, Cluj"},
		{ID: "2", Make: "Dacia", Model: "Duster", Year: 2022, Price: 60000, FuelType: "Diesel", BodyType: "SUV", Location: "București, Sector 1"},
		{ID: "3", Make: "BMW", Model: "X5", Year: 2022, Price: 80000, FuelType: "Diesel", BodyType: "SUV", Location: "Cluj-Napoca, Cluj"},
	}
}

func TestApplyFacets_NoSelectionKeepsOrder(t *testing.T) {
	res := ApplyFacets(fleet(), Selection{})
	require.Len(t, res.Cars, 3)
	assert.Equal(t, "1", res.Cars[0].ID)
	assert.Equal(t, "3", res.Cars[2].ID)
}

func TestApplyFacets_MakeScenario(t *testing.T) {
	sel := Selection{}.With(DimMake, Of("Dacia"))
	res := ApplyFacets(fleet(), sel)

	require.Len(t, res.Cars, 2)
	assert.Equal(t, "Dacia", res.Cars[0].Make)
	assert.Equal(t, "Dacia", res.Cars[1].Make)

	// year options narrow to the Dacias, newest year first
	assert.Equal(t, []string{"All", "2022", "2020"}, res.Options.Years)
	// make options always come from the unfiltered set
	assert.Equal(t, []string{"All", "BMW", "Dacia"}, res.Options.Makes)
}

func TestApplyFacets_PriceBucketScenario(t *testing.T) {
	sel := Selection{}.With(DimMake, Of("Dacia")).With(DimPrice, Of("25k - 50k"))
	res := ApplyFacets(fleet(), sel)
	// 20000 is below the bucket, 60000 above it (upper bound inclusive at 50000)
	assert.Empty(t, res.Cars)
}

func TestPriceBucket_InclusiveBounds(t *testing.T) {
	b, ok := findBucket("25k - 50k")
	require.True(t, ok)
	assert.True(t, b.Contains(25000))
	assert.True(t, b.Contains(50000))
	assert.False(t, b.Contains(24999.99))
	assert.False(t, b.Contains(50000.01))

	open, ok := findBucket("Peste 200k")
	require.True(t, ok)
	assert.True(t, open.Contains(200000))
	assert.True(t, open.Contains(5000000))
	assert.False(t, open.Contains(199999))
}

func TestApplyFacets_SearchMatchesMakeModelAndPair(t *testing.T) {
	res := ApplyFacets(fleet(), Selection{Search: "logan"})
	require.Len(t, res.Cars, 1)
	assert.Equal(t, "1", res.Cars[0].ID)

	res = ApplyFacets(fleet(), Selection{Search: "dacia dus"})
	require.Len(t, res.Cars, 1)
	assert.Equal(t, "2", res.Cars[0].ID)

	res = ApplyFacets(fleet(), Selection{Search: "BMW"})
	require.Len(t, res.Cars, 1)
	assert.Equal(t, "3", res.Cars[0].ID)
}

func TestApplyFacets_LocationFacetKeyAndMatch(t *testing.T) {
	res := ApplyFacets(fleet(), Selection{})
	assert.Equal(t, []string{"All", "București", "Cluj-Napoca"}, res.Options.Locations)

	sel := Selection{}.With(DimLocation, Of("Cluj-Napoca"))
	res = ApplyFacets(fleet(), sel)
	assert.Len(t, res.Cars, 2)
}

// P1: pure function of its inputs.
func TestApplyFacets_Idempotent(t *testing.T) {
	sel := Selection{Search: "dacia"}.With(DimFuelType, Of("Diesel"))
	first := ApplyFacets(fleet(), sel)
	second := ApplyFacets(fleet(), sel)
	assert.Equal(t, first, second)
}

// P2: Any in a dimension yields a superset of any specific value there.
func TestApplyFacets_AnyIsSuperset(t *testing.T) {
	base := Selection{}.With(DimMake, Of("Dacia"))
	all := ApplyFacets(fleet(), base)

	for _, fuel := range []string{"Petrol", "Diesel"} {
		narrowed := ApplyFacets(fleet(), base.With(DimFuelType, Of(fuel)))
		assert.LessOrEqual(t, len(narrowed.Cars), len(all.Cars))
		for _, c := range narrowed.Cars {
			assert.Contains(t, all.Cars, c)
		}
	}
}

// P3: changing make resets year, fuel, body and location to Any.
func TestSelection_CascadingReset(t *testing.T) {
	sel := Selection{}.
		With(DimMake, Of("Dacia")).
		With(DimYear, Of("2022")).
		With(DimFuelType, Of("Diesel")).
		With(DimBodyType, Of("SUV")).
		With(DimLocation, Of("București")).
		With(DimPrice, Of("50k - 100k"))

	sel = sel.With(DimMake, Of("BMW"))

	assert.Equal(t, "BMW", sel.Make.String())
	assert.True(t, sel.Year.IsAny())
	assert.True(t, sel.FuelType.IsAny())
	assert.True(t, sel.BodyType.IsAny())
	assert.True(t, sel.Location.IsAny())
	// price bucket is never auto-reset
	assert.Equal(t, "50k - 100k", sel.Price.String())
}

func TestSelection_MidChainReset(t *testing.T) {
	sel := Selection{}.
		With(DimMake, Of("Dacia")).
		With(DimYear, Of("2022")).
		With(DimFuelType, Of("Diesel")).
		With(DimLocation, Of("București"))

	sel = sel.With(DimYear, Of("2020"))

	assert.Equal(t, "Dacia", sel.Make.String())
	assert.Equal(t, "2020", sel.Year.String())
	assert.True(t, sel.FuelType.IsAny())
	assert.True(t, sel.Location.IsAny())
}

func TestApplyFacets_DirectionalNarrowing(t *testing.T) {
	// selecting fuel narrows body options but not year options
	sel := Selection{}.With(DimFuelType, Of("Petrol"))
	res := ApplyFacets(fleet(), sel)

	assert.Equal(t, []string{"All", "2022", "2020"}, res.Options.Years)
	assert.Equal(t, []string{"All", "Sedan"}, res.Options.BodyTypes)
}

func TestChoice_AllCollapsesToAny(t *testing.T) {
	assert.True(t, Of("All").IsAny())
	assert.True(t, Of("").IsAny())
	assert.False(t, Of("Dacia").IsAny())
	assert.Equal(t, "All", Any().String())
}

func TestSelection_ActiveCount(t *testing.T) {
	sel := Selection{Search: "dacia"}.With(DimMake, Of("Dacia"))
	assert.Equal(t, 2, sel.ActiveCount())
	assert.Equal(t, 0, Selection{}.ActiveCount())
}

func TestApplyFacets_PriceRangeCatalogFixed(t *testing.T) {
	res := ApplyFacets(nil, Selection{})
	assert.Equal(t, []string{"All", "Sub 25k", "25k - 50k", "50k - 100k", "100k - 200k", "Peste 200k"}, res.Options.PriceRanges)
}
