package db

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	IndexName string
	Field     string
	Vector    []float32
	// K is the number of hits returned.
	K int
	// NumCandidates sizes the HNSW runtime candidate pool (EF_RUNTIME).
	// Must be >= K; callers over-fetch so post-filtering cannot starve the
	// result set. Zero leaves the index default.
	NumCandidates int
	ReturnFields  []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit, ordered by similarity.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
