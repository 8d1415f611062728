package rules

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/urlclean/internal/models"
)

const sampleRules = `{
  "version": 1,
  "sites": [
    {
      "when": {
        "host": { "domains": "*" }
      },
      "then": { "remove": ["utm_*", "fbclid"] }
    },
    {
      "when": {
        "host": { "domains": ["instagram.com"], "subdomains": "*" },
        "schemes": ["https"]
      },
      "then": {
        "remove": ["igsh*"],
        "warn": {
          "warnOnEmbeddedCredentials": true,
          "sensitiveParams": ["token"],
          "sensitiveMerge": "UNION",
          "version": 1
        }
      },
      "metadata": { "name": "instagram" }
    },
    {
      "when": {
        "host": { "domains": ["example.com"], "subdomains": "" }
      },
      "then": {
        "warn": { "sensitiveParams": ["password"], "version": 1 }
      }
    },
    {
      "when": {
        "host": { "domains": ["example.org"], "subdomains": ["www", "m"] }
      },
      "then": { "remove": ["ref"] }
    }
  ]
}`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadValidFile(t *testing.T) {
	s := Store{Path: writeTemp(t, sampleRules)}
	settings, err := s.Read()
	require.NoError(t, err)

	require.Len(t, settings.Sites, 4)
	assert.Equal(t, 1, settings.Version)

	assert.Equal(t, models.DomainsAny, settings.Sites[0].When.Host.Domains.Kind)
	assert.Equal(t, []string{"utm_*", "fbclid"}, settings.Sites[0].Then.Remove)

	ig := settings.Sites[1]
	assert.Equal(t, models.DomainList("instagram.com"), ig.When.Host.Domains)
	assert.Equal(t, models.SubdomainsAny, ig.When.Host.Subdomains.Kind)
	assert.Equal(t, []string{"https"}, ig.When.Schemes)
	require.NotNil(t, ig.Then.Warn)
	assert.True(t, ig.Then.Warn.OnEmbeddedCredentials)
	assert.Equal(t, models.MergeUnion, ig.Then.Warn.SensitiveMerge)

	// Warn-only rule with no remove list is legal.
	assert.Empty(t, settings.Sites[2].Then.Remove)
	assert.Equal(t, models.SubdomainsNone, settings.Sites[2].When.Host.Subdomains.Kind)

	assert.Equal(t, models.SubdomainOneOf("www", "m"), settings.Sites[3].When.Host.Subdomains)
}

func TestReadSyntaxError(t *testing.T) {
	s := Store{Path: writeTemp(t, "{not json")}
	_, err := s.Read()

	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestReadMissingFile(t *testing.T) {
	s := Store{Path: filepath.Join(t.TempDir(), "nope.json")}
	_, err := s.Read()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	settings := models.AppSettings{
		Version: 99,
		Sites: []models.URLRule{
			{
				When: models.When{Host: models.HostMatch{Domains: models.DomainList()}},
				Then: models.Then{},
			},
			{
				When: models.When{Host: models.HostMatch{Domains: models.AnyDomains()}},
				Then: models.Then{Remove: []string{"ok_*", "bad?", "also[bad]"}},
			},
		},
	}

	err := Validate(settings)
	require.Error(t, err)

	var paths []string
	for _, e := range collectFieldErrors(err) {
		paths = append(paths, e.FieldPath)
	}
	assert.Contains(t, paths, "version")
	assert.Contains(t, paths, "sites[0].then")
	assert.Contains(t, paths, "sites[0].when.host.domains")
	assert.Contains(t, paths, "sites[1].then.remove[1]")
	assert.Contains(t, paths, "sites[1].then.remove[2]")
}

func collectFieldErrors(err error) []*FieldError {
	var out []*FieldError
	var join interface{ Unwrap() []error }
	if errors.As(err, &join) {
		for _, e := range join.Unwrap() {
			out = append(out, collectFieldErrors(e)...)
		}
		return out
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		out = append(out, fe)
	}
	return out
}

func TestValidateBadMergeMode(t *testing.T) {
	settings := models.AppSettings{
		Version: SupportedVersion,
		Sites: []models.URLRule{{
			When: models.When{Host: models.HostMatch{Domains: models.AnyDomains()}},
			Then: models.Then{Warn: &models.Warn{SensitiveMerge: "SOMETIMES"}},
		}},
	}
	err := Validate(settings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sensitiveMerge")
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "rules.json")
	s := Store{Path: path}

	require.NoError(t, s.Write(Default()))

	got, err := s.Read()
	require.NoError(t, err)
	assert.Equal(t, Default(), got)
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Validate(Default()))
}
