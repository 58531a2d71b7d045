package docstore

// MetricType identifies the similarity metric a collection's index is
// built with. The zero value is not valid; use one of the constants.
type MetricType string

const (
	// L2 is squared Euclidean distance. Lower is more similar; 0 means
	// identical vectors.
	L2 MetricType = "L2"

	// IP is inner product. Higher is more similar.
	IP MetricType = "IP"

	// Cosine is cosine similarity. Higher is more similar, bounded [-1, 1].
	Cosine MetricType = "COSINE"
)

// Valid reports whether m is one of the supported metrics.
func (m MetricType) Valid() bool {
	switch m {
	case L2, IP, Cosine:
		return true
	}
	return false
}

// DistanceAscending reports the direction of the raw metric value: true
// when lower means more similar (distance metrics), false when higher
// means more similar (similarity metrics).
func (m MetricType) DistanceAscending() bool {
	return m == L2
}

// Score maps a raw metric value to a normalized higher-is-better score.
//
// For distance metrics the transform is score = 1/(1+d), bounded in (0, 1]
// for d >= 0 with score(0) = 1. For similarity metrics the raw value is
// already higher-is-better and is returned unchanged: applying 1/(1+d)
// there would invert the ranking.
func (m MetricType) Score(distance float32) float32 {
	if m.DistanceAscending() {
		return 1 / (1 + distance)
	}
	return distance
}
