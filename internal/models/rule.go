package models

import (
	"encoding/json"
	"fmt"
)

// AppSettings is the persisted unit: an ordered rule list plus a schema
// version. It is consumed as an already-validated snapshot; rule order is
// significant for warning aggregation.
type AppSettings struct {
	Version int       `json:"version"`
	Sites   []URLRule `json:"sites"`
}

// URLRule is one declarative rule: a host/scheme predicate and the removal
// patterns and warning settings to apply when it matches.
type URLRule struct {
	When     When           `json:"when"`
	Then     Then           `json:"then"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// When is the match predicate. An absent scheme list means any scheme.
type When struct {
	Host    HostMatch `json:"host"`
	Schemes []string  `json:"schemes,omitempty"`
}

// HostMatch constrains the registrable domain and its subdomain prefix.
type HostMatch struct {
	Domains    Domains    `json:"domains"`
	Subdomains Subdomains `json:"subdomains"`
}

// Then carries the rule effects.
type Then struct {
	Remove []string `json:"remove,omitempty"`
	Warn   *Warn    `json:"warn,omitempty"`
}

// MergeMode controls how sensitiveParams combine across matching rules.
type MergeMode string

const (
	MergeUnion   MergeMode = "UNION"
	MergeReplace MergeMode = "REPLACE"
)

// Warn holds warning settings. Version is carried through as-is; only the
// top-level AppSettings version is gated at load.
type Warn struct {
	OnEmbeddedCredentials bool      `json:"warnOnEmbeddedCredentials,omitempty"`
	SensitiveParams       []string  `json:"sensitiveParams,omitempty"`
	SensitiveMerge        MergeMode `json:"sensitiveMerge,omitempty"`
	Version               int       `json:"version"`
}

// DomainsKind discriminates the domains union.
type DomainsKind int

const (
	DomainsAny DomainsKind = iota
	DomainsList
)

// Domains is either Any ("*" on the wire) or a literal name list.
type Domains struct {
	Kind  DomainsKind
	Names []string
}

// AnyDomains returns the Any variant.
func AnyDomains() Domains {
	return Domains{Kind: DomainsAny}
}

// DomainList returns the ListOf variant.
func DomainList(names ...string) Domains {
	return Domains{Kind: DomainsList, Names: names}
}

func (d Domains) MarshalJSON() ([]byte, error) {
	if d.Kind == DomainsAny {
		return json.Marshal("*")
	}
	return json.Marshal(d.Names)
}

func (d *Domains) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "*" {
			return fmt.Errorf("domains: expected \"*\" or a list, got %q", s)
		}
		*d = Domains{Kind: DomainsAny}
		return nil
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return fmt.Errorf("domains: expected \"*\" or a list: %w", err)
	}
	*d = Domains{Kind: DomainsList, Names: names}
	return nil
}

// SubdomainsKind discriminates the subdomains union.
type SubdomainsKind int

const (
	SubdomainsAny SubdomainsKind = iota
	SubdomainsNone
	SubdomainsOneOf
)

// Subdomains is Any ("*"), None (""), or a list of permitted immediate
// labels. The zero value is Any, matching an absent field.
type Subdomains struct {
	Kind   SubdomainsKind
	Labels []string
}

// AnySubdomains returns the Any variant.
func AnySubdomains() Subdomains {
	return Subdomains{Kind: SubdomainsAny}
}

// NoSubdomains returns the None variant.
func NoSubdomains() Subdomains {
	return Subdomains{Kind: SubdomainsNone}
}

// SubdomainOneOf returns the OneOf variant.
func SubdomainOneOf(labels ...string) Subdomains {
	return Subdomains{Kind: SubdomainsOneOf, Labels: labels}
}

func (s Subdomains) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case SubdomainsNone:
		return json.Marshal("")
	case SubdomainsOneOf:
		return json.Marshal(s.Labels)
	default:
		return json.Marshal("*")
	}
}

func (s *Subdomains) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		switch str {
		case "*":
			*s = Subdomains{Kind: SubdomainsAny}
		case "":
			*s = Subdomains{Kind: SubdomainsNone}
		default:
			return fmt.Errorf("subdomains: expected \"*\", \"\" or a list, got %q", str)
		}
		return nil
	}
	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil {
		return fmt.Errorf("subdomains: expected \"*\", \"\" or a list: %w", err)
	}
	*s = Subdomains{Kind: SubdomainsOneOf, Labels: labels}
	return nil
}
