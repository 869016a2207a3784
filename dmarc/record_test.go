package dmarc

import (
	"strings"
	"testing"
)

func TestShouldCheck(t *testing.T) {
	const trials = 10000

	count := func(record *PolicyRecord) int {
		n := 0
		for range trials {
			if record.ShouldCheck() {
				n++
			}
		}
		return n
	}

	t.Run("absent pct always checks", func(t *testing.T) {
		record := &PolicyRecord{}
		if got := count(record); got != trials {
			t.Errorf("checked %d of %d trials, want all", got, trials)
		}
	})

	t.Run("pct 0 treated as unset", func(t *testing.T) {
		zero := 0
		record := &PolicyRecord{Percent: &zero}
		if got := count(record); got != trials {
			t.Errorf("checked %d of %d trials, want all", got, trials)
		}
	})

	t.Run("pct 100 always checks", func(t *testing.T) {
		hundred := 100
		record := &PolicyRecord{Percent: &hundred}
		if got := count(record); got != trials {
			t.Errorf("checked %d of %d trials, want all", got, trials)
		}
	})

	t.Run("pct 50 checks roughly half", func(t *testing.T) {
		fifty := 50
		record := &PolicyRecord{Percent: &fifty}
		got := count(record)
		if got < 4500 || got > 5500 {
			t.Errorf("checked %d of %d trials, want 4500-5500", got, trials)
		}
	})
}

func TestRecordString(t *testing.T) {
	t.Run("defaults omitted", func(t *testing.T) {
		record, err := ParseRecord("v=DMARC1; p=reject")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := record.String(); got != "v=DMARC1; p=reject" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("non-default tags written", func(t *testing.T) {
		raw := "v=DMARC1; p=quarantine; sp=none; adkim=strict; pct=25; " +
			"rua=mailto:agg@example.com!10m; ri=3600; fo=spf"
		record, err := ParseRecord(raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		s := record.String()
		for _, want := range []string{
			"v=DMARC1", "p=quarantine", "sp=none", "adkim=strict",
			"pct=25", "rua=mailto:agg@example.com!10m", "ri=3600", "fo=spf",
		} {
			if !strings.Contains(s, want) {
				t.Errorf("record string %q missing %q", s, want)
			}
		}
		if strings.Contains(s, "aspf=") {
			t.Errorf("record string %q contains default aspf", s)
		}
		if strings.Contains(s, "rf=") {
			t.Errorf("record string %q contains default rf", s)
		}
	})

	t.Run("reencoded string reparses equivalently", func(t *testing.T) {
		record, err := ParseRecord("v=DMARC1; p=reject; sp=quarantine; pct=10; rua=mailto:a@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		again, err := ParseRecord(record.String())
		if err != nil {
			t.Fatalf("reparse error: %v", err)
		}
		if again.Policy != record.Policy {
			t.Errorf("policy: got %v, want %v", again.Policy, record.Policy)
		}
		if *again.SubdomainPolicy != *record.SubdomainPolicy {
			t.Errorf("sp: got %v, want %v", *again.SubdomainPolicy, *record.SubdomainPolicy)
		}
		if *again.Percent != *record.Percent {
			t.Errorf("pct: got %v, want %v", *again.Percent, *record.Percent)
		}
	})
}

func TestReportAddressString(t *testing.T) {
	tests := []struct {
		addr ReportAddress
		want string
	}{
		{ReportAddress{Address: "mailto:a@example.com"}, "mailto:a@example.com"},
		{ReportAddress{Address: "mailto:a@example.com", SizeLimit: "10m"}, "mailto:a@example.com!10m"},
	}

	for _, tt := range tests {
		if got := tt.addr.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		value interface{ String() string }
		want  string
	}{
		{PolicyNoDMARC, "nodmarc"},
		{PolicyNone, "none"},
		{PolicyQuarantine, "quarantine"},
		{PolicyReject, "reject"},
		{AlignmentRelaxed, "relaxed"},
		{AlignmentStrict, "strict"},
		{ReportAll, "all"},
		{ReportAny, "any"},
		{ReportDKIM, "dkim"},
		{ReportSPF, "spf"},
	}

	for _, tt := range tests {
		if got := tt.value.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
