package engine

import (
	"log/slog"

	"github.com/hashicorp/golang-lru/v2"

	"github.com/bnema/urlclean/internal/models"
	"github.com/bnema/urlclean/internal/urlview"
)

// DefaultCacheSize bounds the compiled rule-set cache.
const DefaultCacheSize = 16

// Engine evaluates rule sets against URLs. It is safe for concurrent use;
// the only mutable state is the compiled-set cache, which serializes its own
// access.
type Engine struct {
	log   *slog.Logger
	cache *lru.Cache[string, *CompiledRuleSet]
}

// New creates an engine. A nil logger discards diagnostics.
func New(logger *slog.Logger, cacheSize int) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, _ := lru.New[string, *CompiledRuleSet](cacheSize)
	return &Engine{log: logger, cache: cache}
}

// Compiled returns a compiled rule set for settings, memoized by rule-set
// fingerprint.
func (e *Engine) Compiled(settings models.AppSettings) (*CompiledRuleSet, error) {
	fp := fingerprint(settings)
	if rs, ok := e.cache.Get(fp); ok {
		return rs, nil
	}
	rs, err := Compile(settings)
	if err != nil {
		return nil, err
	}
	e.cache.Add(fp, rs)
	return rs, nil
}

// RuleMatch records one pattern hit on a token.
type RuleMatch struct {
	RuleIndex int    `json:"rule"`
	Pattern   string `json:"pattern"`
}

// TokenEffect annotates one original query token with what the rules did to
// it.
type TokenEffect struct {
	Index   int         `json:"index"`
	Key     string      `json:"key"`
	Removed bool        `json:"removed"`
	Matches []RuleMatch `json:"matches,omitempty"`
}

// Warnings is the aggregated warning summary.
type Warnings struct {
	HasCredentials  bool     `json:"hasCredentials"`
	SensitiveParams []string `json:"sensitiveParams,omitempty"`
}

// Result is the outcome of cleaning one URL.
type Result struct {
	Cleaned  urlview.URL   `json:"-"`
	Effects  []TokenEffect `json:"tokenEffects"`
	Warnings Warnings      `json:"warnings"`
}

// Clean evaluates rs against u. Selection is cumulative: every rule whose
// predicate matches contributes removals and warnings; a key matching any
// glob of any matching rule is removed from every token carrying it.
// Embedded credentials are never removed, only flagged.
func (e *Engine) Clean(u urlview.URL, rs *CompiledRuleSet) Result {
	hi := newHostInfo(u.Host())
	scheme := u.Scheme()

	var matching []int
	for i, rule := range rs.rules {
		if e.ruleMatches(i, rule, hi, scheme) {
			matching = append(matching, i)
		}
	}

	pairs := u.Query()
	effects := make([]TokenEffect, pairs.Len())
	removedKeys := make(map[string]bool)

	for idx := 0; idx < pairs.Len(); idx++ {
		key := pairs.At(idx).DecodedKey()
		effect := TokenEffect{Index: idx, Key: key}
		for _, ri := range matching {
			for _, pattern := range rs.rules[ri].patterns {
				if pattern.Match(key) {
					effect.Removed = true
					effect.Matches = append(effect.Matches, RuleMatch{RuleIndex: ri, Pattern: pattern.String()})
				}
			}
		}
		if effect.Removed {
			removedKeys[key] = true
		}
		effects[idx] = effect
	}

	cleaned := pairs.RemoveWhere(func(k string) bool { return removedKeys[k] })

	return Result{
		Cleaned:  u.WithQuery(cleaned),
		Effects:  effects,
		Warnings: e.aggregateWarnings(u, rs, matching),
	}
}

// ruleMatches isolates predicate evaluation per rule: an internally
// inconsistent rule is skipped with a diagnostic instead of aborting the
// match pass.
func (e *Engine) ruleMatches(index int, rule compiledRule, hi hostInfo, scheme string) bool {
	if rule.when.Host.Domains.Kind == models.DomainsList && len(rule.when.Host.Domains.Names) == 0 {
		e.log.Warn("skipping rule with empty domain list", "rule", index)
		return false
	}
	if len(rule.patterns) == 0 && rule.warn == nil {
		e.log.Warn("skipping rule with no effect", "rule", index)
		return false
	}
	return matchHost(rule.when.Host, hi) && matchScheme(rule.when.Schemes, scheme)
}

// aggregateWarnings folds warning settings across matching rules in
// declaration order: credential warnings OR-combine; sensitiveParams UNION
// adds to the accumulated set, REPLACE supersedes it, so the last matching
// REPLACE wins and only later UNION rules can re-add entries.
func (e *Engine) aggregateWarnings(u urlview.URL, rs *CompiledRuleSet, matching []int) Warnings {
	var w Warnings
	warnCredentials := false

	var sensitive []string
	seen := make(map[string]bool)
	add := func(params []string) {
		for _, p := range params {
			if !seen[p] {
				seen[p] = true
				sensitive = append(sensitive, p)
			}
		}
	}

	for _, ri := range matching {
		warn := rs.rules[ri].warn
		if warn == nil {
			continue
		}
		warnCredentials = warnCredentials || warn.OnEmbeddedCredentials
		if warn.SensitiveMerge == models.MergeReplace {
			sensitive = nil
			seen = make(map[string]bool)
		}
		add(warn.SensitiveParams)
	}

	w.HasCredentials = warnCredentials && u.HasUserInfo()
	w.SensitiveParams = sensitive
	return w
}
