package dmarc

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/synqronlabs/talon/dns"
	"github.com/synqronlabs/talon/publicsuffix"
)

const (
	// dmarcPrefix is prepended to the host to form the DNS name that
	// carries the DMARC record.
	dmarcPrefix = "_dmarc."

	// versionPrefix must open every DMARC TXT answer, per RFC 7489
	// Section 6.3: the "v=DMARC1" tag is mandatory and MUST appear first.
	// This is a bare prefix check and also accepts e.g. "v=DMARC10",
	// matching the historical behavior of this lookup.
	versionPrefix = "v=DMARC1"
)

// SuffixResolver computes the organizational (registrable) domain of a
// host via longest-match lookup against a public suffix table.
// The publicsuffix package provides file-backed and built-in
// implementations.
type SuffixResolver interface {
	OrganizationalDomain(host string) string
}

// ResolverConfig configures a Resolver. The zero value is usable: lookups
// go through the standard library resolver and the compiled-in Public
// Suffix List.
type ResolverConfig struct {
	// DNS performs the TXT queries. Defaults to dns.NewStdResolver().
	DNS dns.Resolver

	// Suffixes computes organizational domains for the fallback step.
	// Defaults to publicsuffix.Builtin{}. A file-backed table is loaded
	// once and shared across resolutions; inject publicsuffix.LazyList
	// to defer the load to first use.
	Suffixes SuffixResolver

	// Logger for lookup tracing. Optional.
	Logger *slog.Logger
}

// Resolver resolves DMARC receiver policies. It holds no mutable state
// besides the injected capabilities and is safe for concurrent use.
type Resolver struct {
	dns      dns.Resolver
	suffixes SuffixResolver
	log      *slog.Logger
}

// NewResolver creates a Resolver, substituting defaults for unset
// capabilities.
func NewResolver(config ResolverConfig) *Resolver {
	if config.DNS == nil {
		config.DNS = dns.NewStdResolver()
	}
	if config.Suffixes == nil {
		config.Suffixes = publicsuffix.Builtin{}
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{
		dns:      config.DNS,
		suffixes: config.Suffixes,
		log:      config.Logger,
	}
}

// LookupReceiverPolicy looks up the receiver policy published directly by
// host, without the organizational-domain fallback. The actual DNS name
// queried is "_dmarc." + host.
//
// Absence of a record (NXDOMAIN or no TXT answer) returns PolicyNoDMARC
// and a nil error. A published but structurally invalid record returns an
// error wrapping ErrInvalidRecord. DNS transport failures return an error
// wrapping ErrLookup.
func (r *Resolver) LookupReceiverPolicy(ctx context.Context, host string) (ReceiverPolicy, *PolicyRecord, error) {
	name := dmarcPrefix + host

	result, err := r.dns.LookupTXT(ctx, name)
	if err != nil {
		if dns.IsNotFound(err) {
			r.log.Debug("no DMARC record published", "name", name)
			return PolicyNoDMARC, nil, nil
		}
		return PolicyNoDMARC, nil, fmt.Errorf("%w: %v", ErrLookup, err)
	}

	txt := result.Records[0]
	if !strings.HasPrefix(txt, versionPrefix) {
		return PolicyNoDMARC, nil, fmt.Errorf("%w: unknown DMARC version in %q", ErrInvalidRecord, txt)
	}

	record, err := ParseRecord(txt)
	if err != nil {
		return PolicyNoDMARC, nil, err
	}

	r.log.Debug("DMARC record resolved",
		"name", name,
		"policy", record.Policy,
		"authentic", result.Authentic)

	return record.Policy, record, nil
}

// ReceiverPolicy returns the effective DMARC receiver policy for host.
//
// The host is queried first. If it publishes no record, the policy of its
// organizational domain applies instead; that second result, including
// PolicyNoDMARC, is returned as-is and there is no further fallback. A
// leading "_dmarc." on host is stripped before querying, so passing the
// full record name is equivalent to passing the bare host.
func (r *Resolver) ReceiverPolicy(ctx context.Context, host string) (ReceiverPolicy, error) {
	policy, _, err := r.ReceiverPolicyRecord(ctx, host)
	return policy, err
}

// ReceiverPolicyRecord is ReceiverPolicy, additionally returning the
// decoded record for callers that need the report addresses, alignment
// modes or sampling percentage. The record is nil when no policy is
// published.
func (r *Resolver) ReceiverPolicyRecord(ctx context.Context, host string) (ReceiverPolicy, *PolicyRecord, error) {
	host = strings.TrimPrefix(host, dmarcPrefix)

	policy, record, err := r.LookupReceiverPolicy(ctx, host)
	if err != nil || policy != PolicyNoDMARC {
		return policy, record, err
	}

	orgDomain := r.suffixes.OrganizationalDomain(host)
	if orgDomain == "" || orgDomain == host {
		// Already at the organizational domain, nothing to fall back to.
		return policy, record, nil
	}

	r.log.Debug("falling back to organizational domain",
		"host", host, "orgdomain", orgDomain)

	return r.LookupReceiverPolicy(ctx, orgDomain)
}
