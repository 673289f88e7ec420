// Mdns-client is a terminal browser for mDNS/DNS-SD service discovery.
//
// It multicasts a service query (e.g. "_http._tcp.local") and renders a
// live table of responding hosts with their IPv4 and IPv6 addresses.
// The query can be edited in place; committing a new one restarts the
// scan.
//
// Usage:
//
//	mdns-client [query]
//	mdns-client scan [query] --timeout 10
//	mdns-client serve [query] --listen :8090
//
// Without a query the browser opens in edit mode, unless a default query
// is configured. See 'mdns-client --help' for details.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TommyGymer/mdns-client/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mdns-client [query]",
	Short: "Browse mDNS services on the local network",
	Long: `An interactive browser for mDNS/DNS-SD service discovery.

The browser multicasts the given service query and renders a live table
of host names with their IPv4 and IPv6 addresses. Press / to edit the
query; Enter or Esc commits it and restarts the scan.

Queries name a DNS-SD service type, for example:

  _http._tcp.local      web servers
  _ipp._tcp.local       printers
  _workstation._tcp     workstations (domain defaults to local.)

A query of _services._dns-sd._udp.local enumerates every advertised
service type on the network.`,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runBrowse,
	Version: version.Version,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().IntVar(&windowSeconds, "window", 0,
		"discovery session window in seconds (0 = configured or default)")
}
