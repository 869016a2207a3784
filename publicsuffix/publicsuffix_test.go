package publicsuffix

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// testList mirrors the structure of the real Public Suffix List data file:
// comments, exact rules, wildcard labels and exception rules.
const testList = `
// ===BEGIN ICANN DOMAINS===
com
org
uk
co.uk
gov.uk
jp
// yokohama.jp delegates all labels except city
*.yokohama.jp
!city.yokohama.jp
email
`

func loadTestList(t *testing.T) *List {
	t.Helper()
	list, err := Load(strings.NewReader(testList))
	require.NoError(t, err, "loading test list")
	return list
}

func TestListPublicSuffix(t *testing.T) {
	list := loadTestList(t)

	testCases := []struct {
		domain string
		want   string
	}{
		{"example.com", "com"},
		{"sub.example.com", "com"},
		{"example.co.uk", "co.uk"},
		{"a.gov.uk", "gov.uk"},
		{"a.hi.yokohama.jp", "hi.yokohama.jp"},
		{"a.city.yokohama.jp", "yokohama.jp"},
		{"city.yokohama.jp", "yokohama.jp"},
		{"unknown.tld", "tld"},
		{"Example.COM.", "com"},
	}

	for _, tc := range testCases {
		t.Run(tc.domain, func(t *testing.T) {
			require.Equal(t, tc.want, list.PublicSuffix(tc.domain))
		})
	}
}

func TestListOrganizationalDomain(t *testing.T) {
	list := loadTestList(t)

	testCases := []struct {
		domain string
		want   string
	}{
		{"example.com", "example.com"},
		{"sub.example.com", "example.com"},
		{"deep.sub.example.com", "example.com"},
		{"example.co.uk", "example.co.uk"},
		{"sub.example.co.uk", "example.co.uk"},
		{"a.b.gov.uk", "b.gov.uk"},
		// wildcard rule: every label under yokohama.jp is a suffix
		{"a.hi.yokohama.jp", "a.hi.yokohama.jp"},
		// exception rule carves city.yokohama.jp back out
		{"a.city.yokohama.jp", "city.yokohama.jp"},
		{"app.stupid.email", "stupid.email"},
		// a domain that is itself a suffix is returned unchanged
		{"co.uk", "co.uk"},
		{"MAIL.Example.Com", "example.com"},
		{"example.com.", "example.com"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.domain, func(t *testing.T) {
			require.Equal(t, tc.want, list.OrganizationalDomain(tc.domain))
		})
	}
}

func TestLoadSkipsCommentsAndBlanks(t *testing.T) {
	list, err := Load(strings.NewReader("// comment only\n\ncom\n"))
	require.NoError(t, err)
	require.Equal(t, "example.com", list.OrganizationalDomain("sub.example.com"))
}

func TestLazyList(t *testing.T) {
	t.Run("loads once from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "suffixes.dat")
		require.NoError(t, os.WriteFile(path, []byte(testList), 0o644))

		lazy := &LazyList{Path: path}
		require.NoError(t, lazy.Err())
		require.Equal(t, "example.co.uk", lazy.OrganizationalDomain("sub.example.co.uk"))
		require.Equal(t, "co.uk", lazy.PublicSuffix("example.co.uk"))
	})

	t.Run("missing file degrades to input domain", func(t *testing.T) {
		lazy := &LazyList{Path: filepath.Join(t.TempDir(), "absent.dat")}
		require.Error(t, lazy.Err())
		require.Equal(t, "sub.example.com", lazy.OrganizationalDomain("sub.example.com"))
	})
}

func TestBuiltin(t *testing.T) {
	builtin := Builtin{}

	testCases := []struct {
		domain string
		want   string
	}{
		{"example.com", "example.com"},
		{"sub.example.com", "example.com"},
		{"sub.example.co.uk", "example.co.uk"},
		{"localhost", "localhost"},
		{"Example.COM.", "example.com"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.domain, func(t *testing.T) {
			require.Equal(t, tc.want, builtin.OrganizationalDomain(tc.domain))
		})
	}
}
