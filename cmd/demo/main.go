// Command demo writes the sample trip into the configured store as trip
// "demo" and prints it.
package main

import (
	"context"
	"log"

	"tableflip.dev/tripbook/pkg/planner"
	"tableflip.dev/tripbook/pkg/printers"
	"tableflip.dev/tripbook/pkg/runner/ui"
	"tableflip.dev/tripbook/pkg/store"
)

func main() {
	ctx := context.Background()

	s, err := store.Open(nil)
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	p := planner.New(planner.Options{Store: s, Trip: "demo"})
	ui.SeedDemo(ctx, p)
	if err := p.Save(ctx); err != nil {
		log.Fatal(err)
	}

	pp := printers.PrettyPrint{ShowID: true}
	pp.DayPlan(p.Plan())
	pp.Selection(p.Selection())
}
