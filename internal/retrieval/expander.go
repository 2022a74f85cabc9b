// ABOUTME: Rule-based query expansion for common airline support intents
// ABOUTME: Counters TF-IDF's sensitivity to exact vocabulary overlap
package retrieval

import "strings"

// expansionRule appends canonical policy vocabulary when any trigger
// term appears in the query. Rules are ordered; the first match wins.
type expansionRule struct {
	triggers []string
	appended string
}

var expansionRules = []expansionRule{
	{[]string{"baggage", "luggage", "bag"}, " baggage allowance checked carry-on"},
	{[]string{"cancel", "refund"}, " cancellation policy refund ticket"},
	{[]string{"change", "rebook", "reschedule"}, " rebooking change flight reschedule"},
	{[]string{"assistance", "wheelchair", "disability"}, " special assistance disability wheelchair"},
	{[]string{"miles", "points", "status", "tier"}, " loyalty program miles points"},
}

// ExpandQuery enriches short ambiguous queries with domain synonyms.
// Trigger matching is case-insensitive substring matching. Returns the
// query unchanged when no rule fires; the expanded form is used only
// for index lookup, never echoed to the caller.
func ExpandQuery(query string) string {
	lower := strings.ToLower(query)
	for _, rule := range expansionRules {
		for _, trigger := range rule.triggers {
			if strings.Contains(lower, trigger) {
				return lower + rule.appended
			}
		}
	}
	return query
}
