package commands

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/tripbook/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(tripbook completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(tripbook completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

func tripCompletions(ctx context.Context, toComplete string) []string {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil
	}
	s, err := store.Open(cfg)
	if err != nil {
		return nil
	}
	defer s.Close()

	keys, err := s.Keys(ctx, toComplete)
	if err != nil {
		return nil
	}
	seen := map[string]bool{}
	var trips []string
	for _, k := range keys {
		trip, _ := store.SplitKey(k)
		if !seen[trip] && strings.HasPrefix(trip, toComplete) {
			seen[trip] = true
			trips = append(trips, trip)
		}
	}
	sort.Strings(trips)
	return trips
}
