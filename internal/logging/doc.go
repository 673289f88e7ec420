// Package logging provides structured logging for the mDNS client.
//
// It wraps a global zap logger behind package-level functions so every
// component logs the same way without threading a logger through
// constructors.
//
// # Silent by default
//
// The client is a terminal program: its stdout carries UI frames or
// scripted scan output, and stray log lines would corrupt both. Logging
// is therefore disabled unless MDNS_CLIENT_LOG_LEVEL is set (or a command
// passes an explicit level), and all output goes to stderr so it can be
// redirected independently:
//
//	MDNS_CLIENT_LOG_LEVEL=debug mdns-client _http._tcp.local 2>scan.log
//
// # Usage
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
//	logging.Info("scan started",
//	    zap.String("query", "_http._tcp.local"),
//	    zap.Duration("window", 5*time.Second),
//	)
//
// All functions are safe for concurrent use.
package logging
