package engine

import (
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/bnema/urlclean/internal/models"
)

// hostInfo pre-computes the pieces host predicates test against.
type hostInfo struct {
	host        string // lowercased, no brackets
	registrable string // eTLD+1, or the whole host when none applies
	prefix      string // subdomain labels left of the registrable domain
	immediate   string // label directly left of the registrable domain
}

func newHostInfo(host string) hostInfo {
	h := strings.ToLower(strings.Trim(host, "[]"))
	hi := hostInfo{host: h, registrable: h}

	etld1, err := publicsuffix.EffectiveTLDPlusOne(h)
	if err != nil {
		// IP literals, single labels and non-PSL hosts match on the whole
		// host with no subdomain prefix.
		return hi
	}
	hi.registrable = etld1

	if h != etld1 && strings.HasSuffix(h, "."+etld1) {
		hi.prefix = strings.TrimSuffix(h, "."+etld1)
		labels := strings.Split(hi.prefix, ".")
		hi.immediate = labels[len(labels)-1]
	}
	return hi
}

// matchHost evaluates a rule's host predicate. Any matches every host;
// a domain list matches when the registrable domain equals one of the names
// and the subdomain constraint holds.
func matchHost(m models.HostMatch, hi hostInfo) bool {
	if m.Domains.Kind == models.DomainsAny {
		return true
	}

	found := false
	for _, name := range m.Domains.Names {
		if strings.EqualFold(name, hi.registrable) {
			found = true
			break
		}
	}
	if !found {
		return false
	}

	switch m.Subdomains.Kind {
	case models.SubdomainsNone:
		return hi.prefix == ""
	case models.SubdomainsOneOf:
		for _, label := range m.Subdomains.Labels {
			if strings.EqualFold(label, hi.immediate) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// matchScheme evaluates the scheme predicate; an empty list means any.
func matchScheme(schemes []string, scheme string) bool {
	if len(schemes) == 0 {
		return true
	}
	s := strings.ToLower(scheme)
	for _, want := range schemes {
		if strings.ToLower(want) == s {
			return true
		}
	}
	return false
}
