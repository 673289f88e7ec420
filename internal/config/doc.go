// Package config manages the persisted preferences of the mDNS client.
//
// # Storage
//
// Preferences live in a single YAML file in the platform configuration
// directory (see Dir). The file is written atomically via a temp file
// and rename, so an interrupted save never leaves a torn config behind.
// A missing file is not an error: Load returns defaults.
//
// # Environment overrides
//
// After reading the file, Load overlays environment variables carrying
// the MDNS_CLIENT_ prefix:
//
//	MDNS_CLIENT_QUERY           overrides default_query
//	MDNS_CLIENT_WINDOW_SECONDS  overrides window_seconds
//	MDNS_CLIENT_LISTEN_ADDR     overrides listen_addr
//
// Overrides apply for the process only; Save writes the in-memory
// config, so an override is persisted only if the caller kept it.
//
// # Contents
//
// The file stores the default query to browse at startup, the discovery
// session window, the record server bind address, and a short history of
// committed queries (newest first).
package config
