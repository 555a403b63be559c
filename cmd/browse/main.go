package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"autovad-backend/internal/analytics"
	"autovad-backend/internal/carclient"
	"autovad-backend/internal/config"
)

// Interactive listing browser against the cars API. Commands:
//
//	search <term>     fetch page 1 for term
//	more              fetch the next page
//	make <value>      set a facet (also: year, fuel, body, location, price)
//	clear             reset all facets
//	quit
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("config load: " + err.Error())
	}
	if cfg.CarsAPIURL == "" {
		fmt.Fprintln(os.Stderr, "CARS_API_URL is not set")
		os.Exit(1)
	}

	client := &carclient.Client{BaseURL: cfg.CarsAPIURL, APIKey: cfg.CarsAPIKey}
	browser := carclient.NewBrowser(client, 20, &analytics.LogTracker{})
	ctx := context.Background()

	if err := browser.Search(ctx, ""); err != nil {
		fmt.Fprintln(os.Stderr, "initial fetch:", err)
	}
	printSnapshot(browser.Snapshot())

	dims := map[string]carclient.Dimension{
		"make":     carclient.DimMake,
		"year":     carclient.DimYear,
		"fuel":     carclient.DimFuelType,
		"body":     carclient.DimBodyType,
		"location": carclient.DimLocation,
		"price":    carclient.DimPrice,
	}

	sc := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for sc.Scan() {
		cmd, arg, _ := strings.Cut(strings.TrimSpace(sc.Text()), " ")
		switch cmd {
		case "quit", "exit":
			return
		case "search":
			if err := browser.Search(ctx, arg); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		case "more":
			if err := browser.LoadMore(ctx); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		case "clear":
			browser.ClearFilters()
		default:
			dim, ok := dims[cmd]
			if !ok {
				fmt.Fprintln(os.Stderr, "unknown command:", cmd)
				fmt.Print("> ")
				continue
			}
			browser.Select(dim, carclient.Of(arg))
		}
		printSnapshot(browser.Snapshot())
		fmt.Print("> ")
	}
}

func printSnapshot(s carclient.Snapshot) {
	for _, car := range s.Cars {
		fmt.Printf("  %s %s %d — %.0f EUR — %s\n", car.Make, car.Model, car.Year, car.Price, car.Location)
	}
	fmt.Printf("%d shown, page %d", len(s.Cars), s.Cursor.Page)
	if s.Cursor.HasMore {
		fmt.Print(" (more available)")
	}
	fmt.Println()
}
