package main

import (
	"context"
	"fmt"
	"net/netip"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/TommyGymer/mdns-client/internal/config"
	"github.com/TommyGymer/mdns-client/internal/logging"
	"github.com/TommyGymer/mdns-client/internal/records"
	"github.com/TommyGymer/mdns-client/internal/scan"
	"github.com/TommyGymer/mdns-client/internal/server"
	"github.com/TommyGymer/mdns-client/internal/tui"
	"github.com/TommyGymer/mdns-client/internal/version"
)

// Command flags
var (
	windowSeconds int
	scanTimeout   int
	listenAddr    string
	serveLogLevel string
)

var scanCmd = &cobra.Command{
	Use:   "scan [query]",
	Short: "Scan once and print the results",
	Long: `Scan for the given service query, wait for the timeout, and print
every host that answered together with its addresses. Intended for
scripts and for checking what a browse session would show.`,
	Example: `  # Scan for web servers for the default 10 seconds
  mdns-client scan _http._tcp.local

  # Longer scan for printers
  mdns-client scan _ipp._tcp.local --timeout 30

  # Enumerate every advertised service type
  mdns-client scan _services._dns-sd._udp.local`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

var serveCmd = &cobra.Command{
	Use:   "serve [query]",
	Short: "Scan continuously and serve the results over HTTP",
	Long: `Run the scanner headless and expose the live record table:

  /records   current table as JSON
  /ws        websocket push of the same table on every change
  /metrics   Prometheus metrics
  /healthz   liveness probe

The scan keeps running until the server stops.`,
	Example: `  # Serve web server records on the configured address
  mdns-client serve _http._tcp.local

  # Custom listen address and verbose logs
  mdns-client serve _ipp._tcp.local --listen :9000 --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mdns-client %s\n", version.Full())
	},
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "timeout", 10, "how long to scan, in seconds")
	serveCmd.Flags().StringVar(&listenAddr, "listen", "",
		"listen address (default from config, "+config.DefaultListenAddr+")")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "info",
		"log level (debug, info, warn, error)")
}

// loadConfig reads the config and applies the --window flag on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if windowSeconds > 0 {
		cfg.WindowSeconds = windowSeconds
	}
	return cfg, nil
}

// resolveQuery picks the query to browse: the positional argument wins,
// then the configured default. Empty means no query.
func resolveQuery(args []string, cfg *config.Config) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.DefaultQuery
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return err
	}
	defer logging.Sync()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("interactive browsing needs a terminal; use 'mdns-client scan' for scripted output")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := records.NewStore()
	controller := scan.NewController(store)
	controller.Window = cfg.Window()
	defer controller.Shutdown()

	model := tui.NewModel(store, controller, resolveQuery(args, cfg))
	program := tea.NewProgram(model, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("run browser: %w", err)
	}

	// Remember the last committed query for next time.
	if m, ok := final.(tui.Model); ok {
		if q := strings.TrimSpace(m.Query()); q != "" {
			cfg.RememberQuery(q)
			if err := cfg.Save(); err != nil {
				logging.Warn("failed to save config", zap.Error(err))
			}
		}
	}
	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return err
	}
	defer logging.Sync()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	query := resolveQuery(args, cfg)
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("no query given and no default_query configured")
	}

	store := records.NewStore()
	controller := scan.NewController(store)
	controller.Window = cfg.Window()

	fmt.Printf("Scanning for %s (%ds)...\n", query, scanTimeout)
	if err := controller.Start(query); err != nil {
		printHint(err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	select {
	case <-ctx.Done():
		fmt.Println("\nInterrupted.")
	case <-time.After(time.Duration(scanTimeout) * time.Second):
	}
	controller.Shutdown()

	printTable(store.Snapshot())
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	// Headless deployments often configure through the environment.
	_ = godotenv.Load()

	if err := logging.Initialize(serveLogLevel); err != nil {
		return err
	}
	defer logging.Sync()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	query := resolveQuery(args, cfg)
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("no query given and no default_query configured")
	}
	addr := listenAddr
	if addr == "" {
		addr = cfg.ListenAddr
	}

	store := records.NewStore()
	controller := scan.NewController(store)
	controller.Window = cfg.Window()
	if err := controller.Start(query); err != nil {
		printHint(err)
		return err
	}
	defer controller.Shutdown()

	srv := server.New(&server.Config{
		Addr:  addr,
		Query: query,
		Store: store,
	})
	return srv.Run(cmd.Context())
}

// printHint writes the troubleshooting advice for a scan failure, if
// there is any, to stderr.
func printHint(err error) {
	if hint := scan.TroubleshootingHint(err); hint != "" {
		fmt.Fprintf(os.Stderr, "\n%s\n", hint)
	}
}

// printTable writes the final results the way the browse table shows
// them, one row per host.
func printTable(snap records.Set) {
	hosts := snap.Hosts()
	if len(hosts) == 0 {
		fmt.Println("\nNo services found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Check that devices advertising this service are on the same network")
		fmt.Println("  - Try the catch-all query: _services._dns-sd._udp.local")
		fmt.Println("  - Some networks block multicast between wireless clients")
		return
	}

	fmt.Printf("\nFound %d host(s):\n\n", len(hosts))
	fmt.Printf("  %-36s %-18s %s\n", "HOST", "IPV4", "IPV6")
	for _, host := range hosts {
		ipv4, ipv6 := snap.Lookup(host)
		fmt.Printf("  %-36s %-18s %s\n", host, addrColumn(ipv4), addrColumn(ipv6))
	}
}

func addrColumn(addr netip.Addr) string {
	if !addr.IsValid() {
		return "-"
	}
	return addr.String()
}
