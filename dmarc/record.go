package dmarc

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// ReportAddress is a destination for DMARC aggregate or failure reports,
// decoded from one "rua"/"ruf" token.
type ReportAddress struct {
	// Address is the report URI, typically starting with "mailto:".
	Address string

	// SizeLimit is the optional maximum report size suffix (e.g. "10m").
	// Empty means no limit was published.
	SizeLimit string
}

// parseReportAddress splits a raw rua/ruf token on "!" into the address
// and its optional size-limit suffix. At most one suffix is recognized.
func parseReportAddress(token string) ReportAddress {
	addr, limit, _ := strings.Cut(token, "!")
	return ReportAddress{Address: addr, SizeLimit: limit}
}

// String returns the address formatted for a DMARC record.
func (a ReportAddress) String() string {
	if a.SizeLimit != "" {
		return a.Address + "!" + a.SizeLimit
	}
	return a.Address
}

// PolicyRecord is the decoded DMARC record for one DNS TXT answer.
// It is created fresh per answer and immutable once decoded.
type PolicyRecord struct {
	// Version is the value of the mandatory "v" tag, "DMARC1". Its
	// presence and first position in the raw record are enforced by the
	// resolver before decoding.
	Version string

	// Policy is the receiver policy from the mandatory "p" tag.
	// Unrecognized published values degrade to PolicyNoDMARC.
	Policy ReceiverPolicy

	// SubdomainPolicy is the policy for subdomains ("sp" tag), or nil if
	// absent, in which case Policy applies.
	SubdomainPolicy *ReceiverPolicy

	// ADKIM is the DKIM identifier alignment mode ("adkim" tag).
	// Default is relaxed.
	ADKIM AlignmentMode

	// ASPF is the SPF identifier alignment mode ("aspf" tag).
	// Default is relaxed.
	ASPF AlignmentMode

	// Percent is the percentage of messages the policy applies to
	// ("pct" tag), 0-100, or nil if absent.
	Percent *int

	// AggregateReportAddresses are the "rua" destinations, in published
	// order.
	AggregateReportAddresses []ReportAddress

	// FailureReportAddresses are the "ruf" destinations, in published
	// order.
	FailureReportAddresses []ReportAddress

	// ReportInterval is the aggregate reporting interval in seconds
	// ("ri" tag). Default is 86400.
	ReportInterval int

	// ReportFormat is the failure report format ("rf" tag).
	// Default is "afrf".
	ReportFormat string

	// FailureReporting states when failure reports are requested
	// ("fo" tag). Default is ReportAll.
	FailureReporting FailureReporting

	// Raw is the original TXT answer, retained for diagnostics.
	Raw string
}

// ShouldCheck derives a check/skip decision from the record's sampling
// percentage. A record without a "pct" tag (or with pct=0, treated as
// unset) is always checked; otherwise the policy applies to roughly
// Percent percent of evaluations, decided by a uniform random draw.
func (r *PolicyRecord) ShouldCheck() bool {
	if r.Percent == nil || *r.Percent <= 0 {
		return true
	}
	return rand.IntN(100) < *r.Percent
}

// String returns the record re-encoded in DNS TXT tag-value form.
// Tags holding their default values are omitted.
func (r *PolicyRecord) String() string {
	var b strings.Builder
	b.WriteString("v=")
	b.WriteString(r.Version)

	write := func(do bool, tag, value string) {
		if do {
			fmt.Fprintf(&b, "; %s=%s", tag, value)
		}
	}

	write(true, "p", r.Policy.String())
	if r.SubdomainPolicy != nil {
		write(true, "sp", r.SubdomainPolicy.String())
	}

	write(r.ADKIM != AlignmentRelaxed, "adkim", r.ADKIM.String())
	write(r.ASPF != AlignmentRelaxed, "aspf", r.ASPF.String())

	if r.Percent != nil {
		write(true, "pct", fmt.Sprintf("%d", *r.Percent))
	}

	if len(r.AggregateReportAddresses) > 0 {
		write(true, "rua", joinAddresses(r.AggregateReportAddresses))
	}
	if len(r.FailureReportAddresses) > 0 {
		write(true, "ruf", joinAddresses(r.FailureReportAddresses))
	}

	write(r.ReportInterval != defaultReportInterval, "ri", fmt.Sprintf("%d", r.ReportInterval))
	write(r.ReportFormat != defaultReportFormat, "rf", r.ReportFormat)
	write(r.FailureReporting != ReportAll, "fo", r.FailureReporting.String())

	return b.String()
}

func joinAddresses(addrs []ReportAddress) string {
	parts := make([]string, len(addrs))
	for i, a := range addrs {
		parts[i] = a.String()
	}
	return strings.Join(parts, ",")
}
