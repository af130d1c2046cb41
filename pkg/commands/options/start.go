package options

import (
	"time"

	"github.com/spf13/cobra"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// StartOptions dates the first day of the trip.
type StartOptions struct {
	StartString string
}

func AddStartArgs(cmd *cobra.Command, o *StartOptions) {
	cmd.Flags().StringVar(&o.StartString, "start", "",
		`Date of day 1, example: --start="2026-5-28" or --start="5/28".`)
}

// GetStart returns the zero time when no start was given. A month/day without
// a year is taken as the next such date from now.
func (o *StartOptions) GetStart(now time.Time) (time.Time, error) {
	if o.StartString == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(layoutISO, o.StartString)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse(layoutISOShort, o.StartString)
	if err != nil {
		return time.Time{}, err
	}
	t = t.AddDate(now.Year(), 0, 0)
	if t.Before(now.Truncate(24 * time.Hour)) {
		t = t.AddDate(1, 0, 0)
	}
	return t, nil
}
