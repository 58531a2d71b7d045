package docstore

import (
	"math"
	"testing"
)

func TestScore_L2Exact(t *testing.T) {
	cases := []struct {
		distance float32
		want     float32
	}{
		{0, 1},
		{1, 0.5},
		{3, 0.25},
		{0.14, 1 / 1.14},
	}
	for _, c := range cases {
		got := L2.Score(c.distance)
		if math.Abs(float64(got-c.want)) > 1e-6 {
			t.Errorf("L2.Score(%v) = %v, want %v", c.distance, got, c.want)
		}
	}
}

func TestScore_L2Monotonic(t *testing.T) {
	// d1 < d2 must imply score(d1) > score(d2)
	distances := []float32{0, 0.01, 0.5, 1, 2, 10, 100}
	for i := 1; i < len(distances); i++ {
		lo, hi := distances[i-1], distances[i]
		if L2.Score(lo) <= L2.Score(hi) {
			t.Errorf("score not strictly decreasing: score(%v)=%v, score(%v)=%v",
				lo, L2.Score(lo), hi, L2.Score(hi))
		}
	}
}

func TestScore_L2Bounds(t *testing.T) {
	for _, d := range []float32{0, 0.001, 1, 1e6} {
		s := L2.Score(d)
		if s <= 0 || s > 1 {
			t.Errorf("L2.Score(%v) = %v, want in (0, 1]", d, s)
		}
	}
}

func TestScore_SimilarityMetricsPassThrough(t *testing.T) {
	// IP and COSINE report higher-is-better values already; inverting them
	// through 1/(1+d) would reverse the ranking.
	for _, m := range []MetricType{IP, Cosine} {
		for _, v := range []float32{-0.5, 0, 0.42, 0.99} {
			if got := m.Score(v); got != v {
				t.Errorf("%s.Score(%v) = %v, want %v", m, v, got, v)
			}
		}
	}
}

func TestDistanceAscending(t *testing.T) {
	if !L2.DistanceAscending() {
		t.Error("L2 must be distance-ascending")
	}
	if IP.DistanceAscending() || Cosine.DistanceAscending() {
		t.Error("IP and COSINE are similarity metrics, not distance-ascending")
	}
}

func TestMetricValid(t *testing.T) {
	for _, m := range []MetricType{L2, IP, Cosine} {
		if !m.Valid() {
			t.Errorf("%s should be valid", m)
		}
	}
	for _, m := range []MetricType{"", "HAMMING", "l2"} {
		if m.Valid() {
			t.Errorf("%q should be invalid", m)
		}
	}
}
