package metrics

// Config holds the metrics server settings.
type Config struct {
	// Address is the listen address of the /metrics HTTP server,
	// e.g. ":9090".
	Address string

	// ServiceName is applied as a constant "service" label on every
	// metric emitted by this registry.
	ServiceName string

	// EnableDefaultCollectors registers the Go runtime, process, and
	// build info collectors in addition to the store instruments.
	EnableDefaultCollectors bool
}
