package dmarc

import (
	"fmt"
	"strconv"
	"strings"
)

// Defaults per RFC 7489 Section 6.3.
const (
	defaultReportInterval = 86400
	defaultReportFormat   = "afrf"
)

// ParseRecord parses a raw DMARC TXT answer into a PolicyRecord.
//
// The requirement that the "v=DMARC1" tag appears first in the answer is
// enforced by the resolver before this is called; ParseRecord records the
// version value as published. Parsing is deterministic: the same input
// always yields a structurally equal record.
func ParseRecord(raw string) (*PolicyRecord, error) {
	rec, err := decode(parseTags(raw))
	if err != nil {
		return nil, err
	}
	rec.Raw = raw
	return rec, nil
}

// parseTags turns a raw TXT answer into a tag-value mapping. One layer of
// surrounding double quotes and surrounding spaces is stripped; segments
// are separated by ";" and split on their first "=", with whitespace
// trimmed from both sides. Segments without "=" are skipped. Duplicate
// tags overwrite: the last occurrence wins. Tag names are not validated
// here; the decoder ignores unrecognized ones.
func parseTags(raw string) map[string]string {
	s := strings.TrimSpace(raw)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	s = strings.TrimSpace(s)

	tags := make(map[string]string)
	for _, seg := range strings.Split(s, ";") {
		if seg == "" {
			continue
		}
		tag, value, ok := strings.Cut(seg, "=")
		if !ok {
			continue
		}
		tags[strings.TrimSpace(tag)] = strings.TrimSpace(value)
	}
	return tags
}

// decode maps recognized tags onto a typed PolicyRecord, applying per-tag
// coercion and default substitution. Unknown tags are ignored for forward
// compatibility.
//
// Unrecognized values are handled asymmetrically: "p" and "sp" substitute
// the PolicyNoDMARC sentinel, while "adkim", "aspf" and "fo" keep their
// defaults. Both behaviors are deliberate and load-bearing.
func decode(tags map[string]string) (*PolicyRecord, error) {
	rec := &PolicyRecord{
		ADKIM:            AlignmentRelaxed,
		ASPF:             AlignmentRelaxed,
		ReportInterval:   defaultReportInterval,
		ReportFormat:     defaultReportFormat,
		FailureReporting: ReportAll,
	}

	for tag, value := range tags {
		switch tag {
		case "v":
			rec.Version = value

		case "p":
			rec.Policy = policyForName(value)

		case "sp":
			sp := policyForName(value)
			rec.SubdomainPolicy = &sp

		case "adkim":
			if m, ok := alignmentModes[value]; ok {
				rec.ADKIM = m
			}

		case "aspf":
			if m, ok := alignmentModes[value]; ok {
				rec.ASPF = m
			}

		case "pct":
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("%w: non-numeric pct value %q", ErrInvalidRecord, value)
			}
			rec.Percent = &n

		case "ri":
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("%w: non-numeric ri value %q", ErrInvalidRecord, value)
			}
			rec.ReportInterval = n

		case "rf":
			rec.ReportFormat = value

		case "fo":
			if f, ok := failureReportings[value]; ok {
				rec.FailureReporting = f
			}

		case "rua":
			rec.AggregateReportAddresses = parseReportAddresses(value)

		case "ruf":
			rec.FailureReportAddresses = parseReportAddresses(value)
		}
	}

	// The policy tag is mandatory; a record without it is not a valid
	// DMARC record. Note a present-but-unrecognized value is fine (it
	// decoded to the sentinel above), only absence fails.
	if _, ok := tags["p"]; !ok {
		return nil, fmt.Errorf("%w: policy not set", ErrInvalidRecord)
	}

	return rec, nil
}

func parseReportAddresses(value string) []ReportAddress {
	tokens := strings.Split(value, ",")
	addrs := make([]ReportAddress, len(tokens))
	for i, token := range tokens {
		addrs[i] = parseReportAddress(strings.TrimSpace(token))
	}
	return addrs
}
