// Package dns provides the DNS lookup capability used for DMARC policy
// resolution. The production resolver is built on github.com/miekg/dns;
// a standard-library resolver and an in-memory mock are also provided.
package dns

import (
	"context"
	"errors"
)

// DNS lookup errors.
var (
	// ErrNotFound indicates the name does not exist (NXDOMAIN) or the
	// queried record type has no answer. This is a common, expected outcome
	// and callers should treat it as absence, not failure.
	ErrNotFound = errors.New("dns: name or record not found")

	// ErrServFail indicates the server reported a failure (SERVFAIL).
	ErrServFail = errors.New("dns: server failure")

	// ErrTimeout indicates the query timed out.
	ErrTimeout = errors.New("dns: query timed out")

	// ErrRefused indicates the server refused the query.
	ErrRefused = errors.New("dns: query refused")

	// ErrBogus indicates DNSSEC validation failed upstream.
	ErrBogus = errors.New("dns: dnssec validation failed")
)

// IsNotFound reports whether err signals "no such name / no answer".
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsTimeout reports whether err is a query timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsServFail reports whether err is a server failure.
func IsServFail(err error) bool {
	return errors.Is(err, ErrServFail)
}

// IsTemporary reports whether a later retry of the query may succeed.
func IsTemporary(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrServFail)
}

// Result is a DNS answer of record type T.
type Result[T any] struct {
	// Records are the answer records, in answer-section order.
	Records []T

	// Authentic indicates the response was DNSSEC-validated.
	// Always false for resolvers without DNSSEC support.
	Authentic bool
}

// Resolver is the DNS capability consumed by DMARC policy resolution.
// Implementations must be safe for concurrent use.
type Resolver interface {
	// LookupTXT retrieves TXT records for the given name. Absence of the
	// name or of TXT answers is reported as ErrNotFound.
	LookupTXT(ctx context.Context, name string) (Result[string], error)
}
