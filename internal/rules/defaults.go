package rules

import "github.com/bnema/urlclean/internal/models"

// Default returns the shipped rule set, used when no rule file exists or a
// malformed one is rejected at load.
func Default() models.AppSettings {
	warnDefaults := &models.Warn{
		OnEmbeddedCredentials: true,
		SensitiveParams:       []string{"token", "password", "api_key", "secret"},
		SensitiveMerge:        models.MergeUnion,
		Version:               1,
	}

	return models.AppSettings{
		Version: SupportedVersion,
		Sites: []models.URLRule{
			{
				When: models.When{
					Host: models.HostMatch{Domains: models.AnyDomains()},
				},
				Then: models.Then{
					Remove: []string{
						"utm_*",
						"fbclid",
						"gclid",
						"gclsrc",
						"dclid",
						"msclkid",
						"mc_eid",
						"yclid",
						"_hsenc",
						"_hsmi",
						"vero_*",
						"oly_*",
						"wickedid",
					},
					Warn: warnDefaults,
				},
				Metadata: map[string]any{"name": "global tracking parameters"},
			},
			{
				When: models.When{
					Host: models.HostMatch{
						Domains:    models.DomainList("instagram.com"),
						Subdomains: models.AnySubdomains(),
					},
					Schemes: []string{"http", "https"},
				},
				Then: models.Then{
					Remove: []string{"igsh*", "ig_rid"},
				},
				Metadata: map[string]any{"name": "instagram"},
			},
			{
				When: models.When{
					Host: models.HostMatch{
						Domains:    models.DomainList("twitter.com", "x.com"),
						Subdomains: models.AnySubdomains(),
					},
				},
				Then: models.Then{
					Remove: []string{"t", "s", "ref_*"},
				},
				Metadata: map[string]any{"name": "twitter/x"},
			},
			{
				When: models.When{
					Host: models.HostMatch{
						Domains:    models.DomainList("youtube.com"),
						Subdomains: models.SubdomainOneOf("www", "m", "music"),
					},
				},
				Then: models.Then{
					Remove: []string{"si", "pp", "feature"},
				},
				Metadata: map[string]any{"name": "youtube"},
			},
			{
				When: models.When{
					Host: models.HostMatch{
						Domains:    models.DomainList("amazon.com", "amazon.co.uk", "amazon.de"),
						Subdomains: models.AnySubdomains(),
					},
				},
				Then: models.Then{
					Remove: []string{"tag", "linkCode", "ref_*", "pd_rd_*", "pf_rd_*", "qid", "sr"},
				},
				Metadata: map[string]any{"name": "amazon affiliate/search"},
			},
		},
	}
}
