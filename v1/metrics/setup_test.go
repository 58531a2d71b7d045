package metrics

import (
	"errors"
	"testing"
	"time"
)

func gatherValue(t *testing.T, m *Metrics, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
	metric:
		for _, mt := range fam.GetMetric() {
			have := map[string]string{}
			for _, lp := range mt.GetLabel() {
				have[lp.GetName()] = lp.GetValue()
			}
			for k, v := range labels {
				if have[k] != v {
					continue metric
				}
			}
			switch {
			case mt.GetCounter() != nil:
				return mt.GetCounter().GetValue()
			case mt.GetHistogram() != nil:
				return float64(mt.GetHistogram().GetSampleCount())
			}
		}
	}
	t.Fatalf("metric %s%v not found", name, labels)
	return 0
}

func TestObserveOp_CountsByOpAndStatus(t *testing.T) {
	m := NewMetrics(Config{Address: ":0", ServiceName: "test"})

	start := time.Now()
	m.ObserveOp("insert", "ok", start)
	m.ObserveOp("insert", "ok", start)
	m.ObserveOp("search", "error", start)

	if got := gatherValue(t, m, "docstore_store_operations_total",
		map[string]string{"op": "insert", "status": "ok"}); got != 2 {
		t.Errorf("insert/ok = %v, want 2", got)
	}
	if got := gatherValue(t, m, "docstore_store_operations_total",
		map[string]string{"op": "search", "status": "error"}); got != 1 {
		t.Errorf("search/error = %v, want 1", got)
	}
	if got := gatherValue(t, m, "docstore_store_operation_duration_seconds",
		map[string]string{"op": "insert"}); got != 2 {
		t.Errorf("insert duration samples = %v, want 2", got)
	}
}

func TestAddDocumentsWritten(t *testing.T) {
	m := NewMetrics(Config{Address: ":0", ServiceName: "test"})
	m.AddDocumentsWritten(3)
	m.AddDocumentsWritten(2)
	if got := gatherValue(t, m, "docstore_documents_written_total", nil); got != 5 {
		t.Errorf("documents written = %v, want 5", got)
	}
}

func TestStatusOf(t *testing.T) {
	if StatusOf(nil) != "ok" {
		t.Error("nil error must map to ok")
	}
	if StatusOf(errors.New("boom")) != "error" {
		t.Error("non-nil error must map to error")
	}
}
