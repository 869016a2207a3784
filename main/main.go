// Command talon resolves the DMARC receiver policy for the domains given
// on the command line.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/synqronlabs/talon/dmarc"
	"github.com/synqronlabs/talon/dns"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	resolver := dmarc.NewResolver(dmarc.ResolverConfig{
		DNS: dns.NewResolver(dns.ResolverConfig{
			Timeout: 5 * time.Second,
		}),
		Logger: logger,
	})

	domains := os.Args[1:]
	if len(domains) == 0 {
		domains = []string{"google.com", "yahoo.com", "ebay.com", "paypal.com"}
	}

	for _, domain := range domains {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		policy, record, err := resolver.ReceiverPolicyRecord(ctx, domain)
		cancel()

		if err != nil {
			logger.Error("resolution failed", "domain", domain, "err", err)
			continue
		}

		fmt.Printf("%s: %s\n", domain, policy)
		if record == nil {
			continue
		}

		fmt.Printf("  record:    %s\n", record.Raw)
		fmt.Printf("  alignment: dkim=%s spf=%s\n", record.ADKIM, record.ASPF)
		if record.SubdomainPolicy != nil {
			fmt.Printf("  subdomain: %s\n", record.SubdomainPolicy)
		}
		for _, addr := range record.AggregateReportAddresses {
			fmt.Printf("  rua:       %s\n", addr)
		}
		for _, addr := range record.FailureReportAddresses {
			fmt.Printf("  ruf:       %s\n", addr)
		}
		fmt.Printf("  check:     %v\n", record.ShouldCheck())
	}
}
