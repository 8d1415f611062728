package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/bnema/urlclean/internal/globs"
	"github.com/bnema/urlclean/internal/models"
)

// CompiledRuleSet is an AppSettings snapshot with every removal pattern
// compiled. It is immutable after Compile and safe to share across
// goroutines.
type CompiledRuleSet struct {
	fingerprint string
	rules       []compiledRule
}

type compiledRule struct {
	when     models.When
	patterns []globs.Pattern
	warn     *models.Warn
}

// Compile compiles every rule's removal globs, collecting all failures so a
// user can fix every invalid pattern in one pass. On any failure no rule set
// is returned.
func Compile(settings models.AppSettings) (*CompiledRuleSet, error) {
	rs := &CompiledRuleSet{fingerprint: fingerprint(settings)}

	var errs []error
	for i, rule := range settings.Sites {
		cr := compiledRule{when: rule.When, warn: rule.Then.Warn}
		for j, pattern := range rule.Then.Remove {
			p, err := globs.Compile(pattern)
			if err != nil {
				errs = append(errs, fmt.Errorf("sites[%d].then.remove[%d]: %w", i, j, err))
				continue
			}
			cr.patterns = append(cr.patterns, p)
		}
		rs.rules = append(rs.rules, cr)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return rs, nil
}

// Len returns the number of rules.
func (rs *CompiledRuleSet) Len() int {
	return len(rs.rules)
}

// Fingerprint identifies the rule-set content for cache keying.
func (rs *CompiledRuleSet) Fingerprint() string {
	return rs.fingerprint
}

// fingerprint hashes version plus canonical JSON, so content edits without a
// version bump still key differently.
func fingerprint(settings models.AppSettings) string {
	h := fnv.New64a()
	data, err := json.Marshal(settings)
	if err != nil {
		data = []byte(fmt.Sprintf("%+v", settings))
	}
	h.Write(data)
	return fmt.Sprintf("v%d-%016x", settings.Version, h.Sum64())
}
