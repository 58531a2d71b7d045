package metrics

import "time"

// StoreObserver receives store gateway operation outcomes. Implemented by
// *Metrics; consumers treat a nil observer as disabled instrumentation.
type StoreObserver interface {
	// ObserveOp records one completed gateway operation: its name
	// ("insert", "search", ...), outcome status ("ok" or "error"), and
	// start time from which the duration is derived.
	ObserveOp(op, status string, start time.Time)

	// AddDocumentsWritten counts documents persisted by insert and update
	// operations.
	AddDocumentsWritten(n int)
}

// StatusOf maps an operation error to the status label used by ObserveOp.
func StatusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
