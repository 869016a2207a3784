// Package publicsuffix determines organizational (registrable) domains
// using the Public Suffix List, as required by RFC 7489 for the DMARC
// organizational-domain fallback.
//
// Three resolvers are provided: List, loaded from a Public Suffix List
// data file; LazyList, which defers the file load to first use; and
// Builtin, backed by the list compiled into golang.org/x/net/publicsuffix.
package publicsuffix

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	xpsl "golang.org/x/net/publicsuffix"
)

// List is a parsed Public Suffix List: one rule per line, "//" comments,
// "!" prefix for exception rules, "*" for wildcard labels. Read-only after
// load and safe for concurrent use.
type List struct {
	suffixes   map[string]struct{}
	wildcards  map[string]struct{} // base domain after "*."
	exceptions map[string]struct{}
}

// Load parses a Public Suffix List from r.
func Load(r io.Reader) (*List, error) {
	l := &List{
		suffixes:   make(map[string]struct{}),
		wildcards:  make(map[string]struct{}),
		exceptions: make(map[string]struct{}),
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if len(line) == 0 || strings.HasPrefix(line, "//") {
			continue
		}
		// The list is defined on the first whitespace-separated token.
		if i := strings.IndexAny(line, " \t"); i >= 0 {
			line = line[:i]
		}
		line = strings.ToLower(line)

		switch {
		case strings.HasPrefix(line, "!"):
			l.exceptions[line[1:]] = struct{}{}
		case strings.HasPrefix(line, "*."):
			l.wildcards[line[2:]] = struct{}{}
		default:
			l.suffixes[line] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("publicsuffix: reading list: %w", err)
	}

	return l, nil
}

// LoadFile parses a Public Suffix List data file from disk.
func LoadFile(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("publicsuffix: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// normalize lower-cases the domain and strips a trailing dot.
func normalize(domain string) string {
	return strings.TrimSuffix(strings.ToLower(domain), ".")
}

// PublicSuffix returns the public suffix of domain according to the list.
// If no rule matches, the rightmost label is the suffix (the implicit "*"
// rule of the Public Suffix List algorithm).
func (l *List) PublicSuffix(domain string) string {
	domain = normalize(domain)
	if domain == "" {
		return ""
	}

	labels := strings.Split(domain, ".")

	// Candidates run from the whole domain down to the last label, so the
	// first match is the longest (prevailing) rule. Exception rules are
	// checked first at each length: they beat the wildcard they carve out.
	for i := 0; i < len(labels); i++ {
		cand := strings.Join(labels[i:], ".")

		if _, ok := l.exceptions[cand]; ok {
			// The suffix is the exception rule minus its leftmost label.
			return strings.Join(labels[i+1:], ".")
		}
		if _, ok := l.suffixes[cand]; ok {
			return cand
		}
		if i+1 < len(labels) {
			if _, ok := l.wildcards[strings.Join(labels[i+1:], ".")]; ok {
				return cand
			}
		}
	}

	return labels[len(labels)-1]
}

// OrganizationalDomain returns the registrable domain of domain: the public
// suffix plus one label. A domain that is itself a public suffix, or an
// empty input, is returned unchanged.
func (l *List) OrganizationalDomain(domain string) string {
	domain = normalize(domain)
	if domain == "" {
		return ""
	}

	suffix := l.PublicSuffix(domain)
	if domain == suffix {
		return domain
	}

	rest := strings.TrimSuffix(domain, "."+suffix)
	labels := strings.Split(rest, ".")
	return labels[len(labels)-1] + "." + suffix
}

// LazyList is a Path-backed List loaded once on first use. Loading the
// suffix table is the most expensive step of a resolution, so the handle is
// cached and shared; the one-time initialization is synchronized and the
// loaded list is read-only, making LazyList safe for concurrent use.
type LazyList struct {
	// Path is the location of the Public Suffix List data file.
	Path string

	once sync.Once
	list *List
	err  error
}

func (l *LazyList) load() (*List, error) {
	l.once.Do(func() {
		l.list, l.err = LoadFile(l.Path)
	})
	return l.list, l.err
}

// PublicSuffix returns the public suffix of domain.
// If the data file cannot be loaded, the input domain is returned.
func (l *LazyList) PublicSuffix(domain string) string {
	list, err := l.load()
	if err != nil {
		return normalize(domain)
	}
	return list.PublicSuffix(domain)
}

// OrganizationalDomain returns the registrable domain of domain.
// If the data file cannot be loaded, the input domain is returned.
func (l *LazyList) OrganizationalDomain(domain string) string {
	list, err := l.load()
	if err != nil {
		return normalize(domain)
	}
	return list.OrganizationalDomain(domain)
}

// Err reports whether loading the data file failed. It loads the file if
// that has not happened yet.
func (l *LazyList) Err() error {
	_, err := l.load()
	return err
}

// Builtin resolves organizational domains using the Public Suffix List
// compiled into golang.org/x/net/publicsuffix. The zero value is ready
// to use; no data file is required.
type Builtin struct{}

// PublicSuffix returns the public suffix of domain.
func (Builtin) PublicSuffix(domain string) string {
	suffix, _ := xpsl.PublicSuffix(normalize(domain))
	return suffix
}

// OrganizationalDomain returns the registrable domain of domain.
// Inputs without a registrable domain (e.g. "localhost", a bare public
// suffix) are returned unchanged.
func (Builtin) OrganizationalDomain(domain string) string {
	domain = normalize(domain)
	if domain == "" {
		return ""
	}

	etld1, err := xpsl.EffectiveTLDPlusOne(domain)
	if err != nil {
		return domain
	}
	return etld1
}
