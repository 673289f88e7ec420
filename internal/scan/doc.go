// Package scan runs the background mDNS browse that feeds the record
// store.
//
// # Generations and sessions
//
// A scan generation is everything that happens between one Start and the
// next: one query, one task goroutine, one sequence of results. Within a
// generation the task opens a chain of discovery sessions against the
// resolver. Each session is bounded by a window (DefaultWindow unless
// configured); when the window elapses the resolver closes the entry
// stream and the task opens a fresh session for the same query. Renewal
// matters because the resolver deduplicates within a session: a service
// that changed its address mid-session is only re-reported once a new
// session asks again.
//
// # Lifecycle
//
// The Controller enforces at most one live generation. Start parses the
// query, retires any running task (cancel, then wait for it to exit),
// clears the store, and opens the first session synchronously so a
// startup failure is an ordinary returned error. Renewal failures after
// a successful start are retried with a delay and logged; they never
// kill a running scan. Shutdown retires the current task the same way
// and is safe to call repeatedly.
//
// Cancellation is cooperative. The task checks its context before every
// receive and finishes recording the entry in hand; "stopped" means the
// task goroutine has exited and its session context is cancelled, which
// is what the retire wait observes.
//
// # Failure taxonomy
//
// Startup failures are categorized as ScanError values (bad query, no
// resolver, browse send failed) with TroubleshootingHint providing
// user-facing advice. Per-response problems, like an entry with no
// usable host or addresses, are skipped, counted and logged at debug
// level; a scan never dies because one advertisement was malformed.
package scan
