// Package dmarc resolves and interprets DMARC (Domain-based Message
// Authentication, Reporting, and Conformance) policy records per RFC 7489.
//
// A domain publishes its DMARC policy in DNS as a TXT record under
// "_dmarc.<domain>". Given a mail-sending domain, this package determines
// the receiver policy (none, quarantine or reject) that applies when
// authentication fails. If the domain itself publishes no record, the
// organizational (registrable) domain's record applies instead, determined
// via the Public Suffix List.
//
// # Basic Usage
//
//	resolver := dmarc.NewResolver(dmarc.ResolverConfig{
//	    DNS: dns.NewResolver(dns.ResolverConfig{
//	        DNSSEC: true,
//	    }),
//	})
//
//	policy, err := resolver.ReceiverPolicy(ctx, "mail.example.com")
//	if err != nil {
//	    // Handle error
//	}
//
//	switch policy {
//	case dmarc.PolicyReject:
//	    // Reject messages failing authentication
//	case dmarc.PolicyQuarantine:
//	    // Mark messages failing authentication as suspicious
//	case dmarc.PolicyNone, dmarc.PolicyNoDMARC:
//	    // Deliver normally
//	}
//
// Callers that need more than the bare policy (report addresses, alignment
// modes, the sampling percentage) use ReceiverPolicyRecord, which also
// returns the decoded PolicyRecord:
//
//	policy, record, err := resolver.ReceiverPolicyRecord(ctx, "example.com")
//	if err == nil && record != nil && record.ShouldCheck() {
//	    // Apply the policy to this message
//	}
//
// # Resolution Outcomes
//
// Three outcomes are distinguished. A domain that publishes no record at
// all yields PolicyNoDMARC with a nil error; this is a legitimate, common
// result. A record that is present but structurally invalid (missing or
// misplaced version tag, missing policy tag, non-numeric numeric tags)
// yields an error wrapping ErrInvalidRecord. A DNS transport failure other
// than "no such name" yields an error wrapping ErrLookup; it is never
// retried internally.
//
// Unrecognized values inside an otherwise well-formed record are not
// errors: a bad "p" or "sp" value degrades to the PolicyNoDMARC sentinel,
// and bad "adkim", "aspf" or "fo" values keep their documented defaults.
//
// # References
//
//   - RFC 7489: Domain-based Message Authentication, Reporting, and
//     Conformance (DMARC)
package dmarc
