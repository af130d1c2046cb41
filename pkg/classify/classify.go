// Package classify holds the keyword inference used by the day assignment
// heuristic. Everything here is a pure function of its text input.
package classify

import (
	"regexp"
	"strconv"
	"strings"

	"tableflip.dev/tripbook/pkg/item"
)

var (
	nightsPattern   = regexp.MustCompile(`(?i)(\d+)\s*-?\s*nights?\b`)
	multiDayPattern = regexp.MustCompile(`(?i)(\d+)\s*-?\s*days?\b`)
	wordPattern     = regexp.MustCompile(`[a-z]+`)
)

type slotRule struct {
	slot     item.TimeOfDay
	keywords []string
}

// Rules are checked in order; the first keyword hit wins.
var activityRules = []slotRule{
	{item.Morning, []string{"morning", "breakfast", "sunrise"}},
	{item.Afternoon, []string{"afternoon", "lunch"}},
	{item.Evening, []string{"evening", "dinner", "sunset"}},
}

var diningRules = []slotRule{
	{item.Morning, []string{"breakfast"}},
	{item.Afternoon, []string{"lunch"}},
	{item.Evening, []string{"dinner"}},
}

// ActivitySlot infers the time of day for an activity from its text.
func ActivitySlot(text string) item.TimeOfDay {
	return match(activityRules, text)
}

// DiningSlot infers the time of day for a meal from its text.
func DiningSlot(text string) item.TimeOfDay {
	return match(diningRules, text)
}

func match(rules []slotRule, text string) item.TimeOfDay {
	words := make(map[string]struct{})
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		words[w] = struct{}{}
	}
	for _, r := range rules {
		for _, k := range r.keywords {
			if _, ok := words[k]; ok {
				return r.slot
			}
		}
	}
	return item.Flexible
}

// Nights reads a stay length such as "Hotel (2 nights)" or "3-night lodge".
// It returns 1 when no positive count is present.
func Nights(title string) int {
	if n := firstInt(nightsPattern, title); n > 0 {
		return n
	}
	return 1
}

// MultiDay returns N for text like "3-day safari" or "2 days in the delta",
// and 0 when the text names no day span.
func MultiDay(text string) int {
	return firstInt(multiDayPattern, text)
}

// Departure reports whether a transport title is an outbound leg at the end of
// the trip.
func Departure(title string) bool {
	t := strings.ToLower(title)
	return strings.Contains(t, "return") || strings.Contains(t, "departure")
}

func firstInt(re *regexp.Regexp, text string) int {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
