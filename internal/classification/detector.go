// Package classification files transactions under categories by matching
// their notes against prioritized regular expression rules.
package classification

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/Veraticus/savings-sprint/internal/model"
)

// Rule maps notes matching Pattern to Category. An empty Type applies the
// rule to income and expenses alike.
type Rule struct {
	Name     string                `mapstructure:"name"`
	Type     model.TransactionType `mapstructure:"type"`
	Category string                `mapstructure:"category"`
	Pattern  string                `mapstructure:"pattern"`
	Priority int                   `mapstructure:"priority"` // higher is checked first
}

type compiledRule struct {
	regex *regexp.Regexp
	Rule
}

// Detector matches transactions against rules in priority order.
type Detector struct {
	rules []compiledRule
	mu    sync.RWMutex
}

// NewDetector compiles rules. Patterns are case-insensitive.
func NewDetector(rules []Rule) (*Detector, error) {
	compiled, err := compile(rules)
	if err != nil {
		return nil, err
	}
	return &Detector{rules: compiled}, nil
}

func compile(rules []Rule) ([]compiledRule, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		if r.Type != "" && !r.Type.IsValid() {
			return nil, fmt.Errorf("rule %s: unknown type %q", r.Name, r.Type)
		}
		if r.Type != "" && !model.IsValidCategory(r.Type, r.Category) {
			return nil, fmt.Errorf("rule %s: %q is not an %s category", r.Name, r.Category, r.Type)
		}

		pattern := r.Pattern
		if !strings.HasPrefix(pattern, "(?i)") {
			pattern = "(?i)" + pattern
		}
		regex, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to compile rule %s: %w", r.Name, err)
		}
		compiled = append(compiled, compiledRule{Rule: r, regex: regex})
	}

	sort.SliceStable(compiled, func(i, j int) bool {
		return compiled[i].Priority > compiled[j].Priority
	})
	return compiled, nil
}

// Match is the rule that categorized a transaction.
type Match struct {
	RuleName string
	Category string
}

// Categorize returns the first rule matching txn's note whose category is
// valid for txn's type.
func (d *Detector) Categorize(txn model.Transaction) (Match, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	note := strings.TrimSpace(txn.Note)
	if note == "" {
		return Match{}, false
	}

	for _, r := range d.rules {
		if r.Type != "" && r.Type != txn.Type {
			continue
		}
		if !model.IsValidCategory(txn.Type, r.Category) {
			continue
		}
		if r.regex.MatchString(note) {
			return Match{RuleName: r.Name, Category: r.Category}, true
		}
	}
	return Match{}, false
}

// Apply recategorizes the transactions filed under Other in place and
// returns how many changed.
func (d *Detector) Apply(txns []model.Transaction) int {
	changed := 0
	for i := range txns {
		if txns[i].Category != "" && txns[i].Category != model.OtherCategory {
			continue
		}
		if m, ok := d.Categorize(txns[i]); ok {
			txns[i].Category = m.Category
			changed++
		}
	}
	return changed
}

// UpdateRules replaces the detector's rules.
func (d *Detector) UpdateRules(rules []Rule) error {
	compiled, err := compile(rules)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.rules = compiled
	d.mu.Unlock()
	return nil
}

// RuleCount returns the number of loaded rules.
func (d *Detector) RuleCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.rules)
}
