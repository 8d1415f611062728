package rules

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/urlclean/internal/globs"
	"github.com/bnema/urlclean/internal/models"
)

// SupportedVersion is the rule-file schema version this build understands.
const SupportedVersion = 1

// Store reads and writes AppSettings snapshots at a fixed path.
type Store struct {
	Path string
}

// Read loads and validates the rule file. A malformed file fails as a whole;
// no partial rule set is ever returned.
func (s Store) Read() (models.AppSettings, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return models.AppSettings{}, err
	}

	var settings models.AppSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return models.AppSettings{}, &ParseError{Path: s.Path, Err: err}
	}
	if err := Validate(settings); err != nil {
		return models.AppSettings{}, err
	}
	return settings, nil
}

// Write validates and persists settings as indented JSON.
func (s Store) Write(settings models.AppSettings) error {
	if err := Validate(settings); err != nil {
		return err
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.Path, append(data, '\n'), 0644)
}

// Validate checks a rule set against the schema, collecting every problem
// instead of stopping at the first so a user can fix a file in one pass.
func Validate(settings models.AppSettings) error {
	var errs []error

	if settings.Version != SupportedVersion {
		errs = append(errs, fieldErrorf("version",
			"unsupported version %d (supported: %d)", settings.Version, SupportedVersion))
	}

	for i, rule := range settings.Sites {
		errs = append(errs, validateRule(fmt.Sprintf("sites[%d]", i), rule)...)
	}

	return errors.Join(errs...)
}

func validateRule(path string, rule models.URLRule) []error {
	var errs []error

	if len(rule.Then.Remove) == 0 && rule.Then.Warn == nil {
		errs = append(errs, fieldErrorf(path+".then",
			"rule must define a non-empty remove list or a warn block"))
	}

	if rule.When.Host.Domains.Kind == models.DomainsList && len(rule.When.Host.Domains.Names) == 0 {
		errs = append(errs, fieldErrorf(path+".when.host.domains", "domain list must not be empty"))
	}
	for j, name := range rule.When.Host.Domains.Names {
		if name == "" {
			errs = append(errs, fieldErrorf(fmt.Sprintf("%s.when.host.domains[%d]", path, j),
				"domain must not be empty"))
		}
	}
	for j, label := range rule.When.Host.Subdomains.Labels {
		if label == "" {
			errs = append(errs, fieldErrorf(fmt.Sprintf("%s.when.host.subdomains[%d]", path, j),
				"subdomain label must not be empty"))
		}
	}
	for j, scheme := range rule.When.Schemes {
		if scheme == "" {
			errs = append(errs, fieldErrorf(fmt.Sprintf("%s.when.schemes[%d]", path, j),
				"scheme must not be empty"))
		}
	}

	for j, pattern := range rule.Then.Remove {
		if _, err := globs.Compile(pattern); err != nil {
			errs = append(errs, fieldErrorf(fmt.Sprintf("%s.then.remove[%d]", path, j), "%v", err))
		}
	}

	if w := rule.Then.Warn; w != nil {
		switch w.SensitiveMerge {
		case "", models.MergeUnion, models.MergeReplace:
		default:
			errs = append(errs, fieldErrorf(path+".then.warn.sensitiveMerge",
				"expected UNION or REPLACE, got %q", w.SensitiveMerge))
		}
	}

	return errs
}
