package domain

// Activity names one row of the XP rule table.
type Activity string

const (
	ActivityWorkoutComplete Activity = "workout_complete"
	ActivityDurationBonus   Activity = "duration_bonus" // per whole minute
	ActivityPerfectWorkout  Activity = "perfect_workout"
	ActivityFirstDaily      Activity = "first_daily_workout"
	ActivityStreakTier3     Activity = "streak_tier_3"
	ActivityStreakTier7     Activity = "streak_tier_7"
	ActivityStreakTier30    Activity = "streak_tier_30"
)

// Rule is one XP award rule. An inactive rule contributes nothing.
type Rule struct {
	Activity Activity `json:"activity"`
	BaseXP   int64    `json:"base_xp"`
	Active   bool     `json:"active"`
}

// RuleTable is an injected, versioned XP configuration. The award
// calculator never mutates it, which keeps the calculation pure and
// lets tests pin a table.
type RuleTable struct {
	Version int64 `json:"version"`
	rules   map[Activity]Rule
}

// NewRuleTable builds a table from explicit rules.
func NewRuleTable(version int64, rules []Rule) RuleTable {
	m := make(map[Activity]Rule, len(rules))
	for _, r := range rules {
		m[r.Activity] = r
	}
	return RuleTable{Version: version, rules: m}
}

// DefaultRuleTable returns the stock award configuration.
func DefaultRuleTable() RuleTable {
	return NewRuleTable(1, []Rule{
		{Activity: ActivityWorkoutComplete, BaseXP: 50, Active: true},
		{Activity: ActivityDurationBonus, BaseXP: 2, Active: true},
		{Activity: ActivityPerfectWorkout, BaseXP: 25, Active: true},
		{Activity: ActivityFirstDaily, BaseXP: 15, Active: true},
		{Activity: ActivityStreakTier3, BaseXP: 25, Active: true},
		{Activity: ActivityStreakTier7, BaseXP: 50, Active: true},
		{Activity: ActivityStreakTier30, BaseXP: 100, Active: true},
	})
}

// Rules returns the table rows (for display and persistence).
func (t RuleTable) Rules() []Rule {
	out := make([]Rule, 0, len(t.rules))
	for _, r := range t.rules {
		out = append(out, r)
	}
	return out
}

// Amount returns the rule's XP, or 0 if the rule is missing or inactive.
func (t RuleTable) Amount(a Activity) int64 {
	r, ok := t.rules[a]
	if !ok || !r.Active {
		return 0
	}
	return r.BaseXP
}
