package dmarc

import (
	"errors"
)

// Resolution errors.
var (
	// ErrInvalidRecord indicates a published TXT answer violates the
	// mandatory DMARC record structure: a missing or misplaced version
	// tag, a missing policy tag, or a non-numeric pct/ri value.
	ErrInvalidRecord = errors.New("dmarc: invalid DMARC record")

	// ErrLookup indicates a DNS transport failure other than "no such
	// name / no answer" (timeout, server failure, refusal). The caller
	// decides on retry policy; resolution never retries internally.
	ErrLookup = errors.New("dmarc: DNS lookup error")
)

// ReceiverPolicy is the policy a mail receiver should apply to messages
// that fail DMARC authentication.
type ReceiverPolicy int

const (
	// PolicyNoDMARC means no usable published policy was found. It is
	// never written into a DNS record; only the resolver produces it.
	// Often interpreted the same way as PolicyNone.
	PolicyNoDMARC ReceiverPolicy = iota

	// PolicyNone requests no specific action for failing messages.
	PolicyNone

	// PolicyQuarantine requests that failing messages be treated as
	// suspicious, typically delivered to a spam folder.
	PolicyQuarantine

	// PolicyReject requests that failing messages be rejected.
	PolicyReject
)

// receiverPolicies maps published "p"/"sp" tag values to policies.
// Lookup is case-sensitive.
var receiverPolicies = map[string]ReceiverPolicy{
	"none":       PolicyNone,
	"quarantine": PolicyQuarantine,
	"reject":     PolicyReject,
}

// policyForName maps a raw tag value to its policy. Malformed values
// degrade to the PolicyNoDMARC sentinel, never to the absence of a
// decision.
func policyForName(s string) ReceiverPolicy {
	if p, ok := receiverPolicies[s]; ok {
		return p
	}
	return PolicyNoDMARC
}

func (p ReceiverPolicy) String() string {
	switch p {
	case PolicyNone:
		return "none"
	case PolicyQuarantine:
		return "quarantine"
	case PolicyReject:
		return "reject"
	default:
		return "nodmarc"
	}
}

// AlignmentMode governs DKIM/SPF identifier alignment strictness.
type AlignmentMode int

const (
	// AlignmentRelaxed requires the organizational domains to match.
	// This is the default mode.
	AlignmentRelaxed AlignmentMode = iota

	// AlignmentStrict requires exact domain matches.
	AlignmentStrict
)

var alignmentModes = map[string]AlignmentMode{
	"relaxed": AlignmentRelaxed,
	"strict":  AlignmentStrict,
}

func (m AlignmentMode) String() string {
	if m == AlignmentStrict {
		return "strict"
	}
	return "relaxed"
}

// FailureReporting governs when failure reports are generated. Report
// generation itself is out of scope; only the parsed value is retained.
type FailureReporting int

const (
	// ReportAll requests a report when all authentication mechanisms
	// fail. This is the default.
	ReportAll FailureReporting = iota

	// ReportAny requests a report when any mechanism fails.
	ReportAny

	// ReportDKIM requests a report on DKIM failure.
	ReportDKIM

	// ReportSPF requests a report on SPF failure.
	ReportSPF
)

var failureReportings = map[string]FailureReporting{
	"all":  ReportAll,
	"any":  ReportAny,
	"dkim": ReportDKIM,
	"spf":  ReportSPF,
}

func (f FailureReporting) String() string {
	switch f {
	case ReportAny:
		return "any"
	case ReportDKIM:
		return "dkim"
	case ReportSPF:
		return "spf"
	default:
		return "all"
	}
}
