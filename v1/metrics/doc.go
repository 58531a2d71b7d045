// Package metrics exposes Prometheus instrumentation for the document
// access layer.
//
// Each process gets its own isolated registry served on a /metrics HTTP
// endpoint. The built-in instruments cover the store gateway: a counter of
// operations by name and status, a histogram of operation latencies, and a
// counter of documents written.
//
// The gateway reports through the small [StoreObserver] interface rather
// than depending on Prometheus types, so the contract layer and tests stay
// free of the metrics stack. A nil observer disables reporting.
//
// Usage:
//
//	m := metrics.NewMetrics(metrics.Config{
//	    Address:     ":9090",
//	    ServiceName: "docstore",
//	})
//	go m.Server.ListenAndServe()
//
// Access metrics at http://localhost:9090/metrics.
package metrics
