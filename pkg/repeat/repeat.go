// Package repeat copies a hand-placed item onto more days.
package repeat

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"tableflip.dev/tripbook/pkg/dayplan"
	"tableflip.dev/tripbook/pkg/item"
)

// ParseDays reads free-form day text such as "2, 4 6". Tokens are split on
// commas and whitespace; anything that is not a positive integer is dropped.
// The result is deduplicated and keeps first-seen order.
func ParseDays(text string) []int {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	seen := make(map[int]struct{}, len(fields))
	var days []int
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		days = append(days, n)
	}
	return days
}

// Repeat inserts a copy of it at the end of every requested day that does not
// already hold an item with the same id. Copies keep the id. Selection-sourced
// items are owned by reconciliation and are never repeated. The days that got
// a copy are returned in ascending order.
func Repeat(plan dayplan.Plan, it item.Item, days []int) (dayplan.Plan, []int) {
	if it.ID == "" || it.Sourced() {
		return plan, nil
	}
	var added []int
	for _, day := range days {
		if day < 1 || plan.Contains(day, it.ID) {
			continue
		}
		plan = plan.Append(day, it)
		added = append(added, day)
	}
	sort.Ints(added)
	return plan, added
}

// RepeatText is Repeat with the day list given as text.
func RepeatText(plan dayplan.Plan, it item.Item, text string) (dayplan.Plan, []int) {
	return Repeat(plan, it, ParseDays(text))
}
