package sqlite

import (
	"fmt"

	"github.com/pulsefit-app/pulsefit/internal/domain"
)

// ─── XP Rule Table ──────────────────────────────────────────────────────────

// SeedRules inserts any missing rule rows. Existing rows win, so an
// operator's tuning survives restarts.
func (d *DB) SeedRules(rules []domain.Rule) error {
	for _, r := range rules {
		_, err := d.db.Exec(
			`INSERT OR IGNORE INTO xp_rules (activity, base_xp, active) VALUES (?, ?, ?)`,
			string(r.Activity), r.BaseXP, r.Active,
		)
		if err != nil {
			return fmt.Errorf("seed rule %s: %w", r.Activity, err)
		}
	}
	return nil
}

// LoadRuleTable reads the persisted rule rows into an award table.
func (d *DB) LoadRuleTable() (domain.RuleTable, error) {
	rows, err := d.db.Query(`SELECT activity, base_xp, active FROM xp_rules`)
	if err != nil {
		return domain.RuleTable{}, err
	}
	defer rows.Close()

	var rules []domain.Rule
	for rows.Next() {
		var r domain.Rule
		var activity string
		if err := rows.Scan(&activity, &r.BaseXP, &r.Active); err != nil {
			return domain.RuleTable{}, err
		}
		r.Activity = domain.Activity(activity)
		rules = append(rules, r)
	}
	if err := rows.Err(); err != nil {
		return domain.RuleTable{}, err
	}
	return domain.NewRuleTable(1, rules), nil
}

// SetRuleActive toggles one rule row.
func (d *DB) SetRuleActive(activity domain.Activity, active bool) error {
	_, err := d.db.Exec(
		`UPDATE xp_rules SET active = ? WHERE activity = ?`, active, string(activity),
	)
	return err
}
