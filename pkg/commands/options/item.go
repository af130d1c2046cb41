package options

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/tripbook/pkg/item"
)

// ItemOptions describe an item being added from the command line.
type ItemOptions struct {
	ID          string
	Subtitle    string
	Description string
	Category    string
	TimeOfDay   string
	Price       float64
	Quantity    int
	Day         int
}

func AddItemArgs(cmd *cobra.Command, o *ItemOptions) {
	cmd.Flags().StringVar(&o.ID, "id", "",
		"Identifier of the item. Generated when empty.")
	cmd.Flags().StringVar(&o.Subtitle, "subtitle", "",
		"Short detail shown next to the title.")
	cmd.Flags().StringVar(&o.Description, "description", "",
		"Longer description, also read by the day assignment.")
	cmd.Flags().StringVarP(&o.Category, "category", "c", "",
		`Category, example: --category=hotel. One of lodging, activity, dining, transport or other.`)
	cmd.Flags().StringVar(&o.TimeOfDay, "time", "",
		"Time of day: morning, afternoon, evening or flexible.")
	cmd.Flags().IntVarP(&o.Day, "day", "d", 0,
		"Day to place it on. 0 lets the planner choose.")
}

func AddPriceArgs(cmd *cobra.Command, o *ItemOptions) {
	cmd.Flags().Float64Var(&o.Price, "price", 0,
		"Unit price.")
	cmd.Flags().IntVarP(&o.Quantity, "qty", "q", 1,
		"Quantity.")
}

// Item builds the item titled by args.
func (o *ItemOptions) Item(args []string) item.Item {
	it := item.Item{
		ID:          strings.TrimSpace(o.ID),
		Title:       strings.TrimSpace(strings.Join(args, " ")),
		Subtitle:    o.Subtitle,
		Description: o.Description,
		Category:    item.Category(o.Category),
		Price:       o.Price,
		Quantity:    o.Quantity,
		Day:         o.Day,
	}
	if o.TimeOfDay != "" {
		it.TimeOfDay = item.ParseTimeOfDay(o.TimeOfDay)
	}
	return it
}
