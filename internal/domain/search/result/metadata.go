package result

// CacheInfo describes the cache outcome for one response.
type CacheInfo struct {
	Hit        bool   `json:"hit"`
	Key        string `json:"key"`
	TTLSeconds int    `json:"ttlSeconds"`
	// Bypassed is set when the cache store failed and the response was
	// computed without caching.
	Bypassed bool `json:"bypassed,omitempty"`
}

// Metadata accompanies every search response. Never persisted beyond the
// cached payload itself.
type Metadata struct {
	Query           string    `json:"query"`
	Classification  string    `json:"classification"`
	ExecutionTimeMs int64     `json:"executionTimeMs"`
	SortBy          string    `json:"sortBy"`
	SortOrder       string    `json:"sortOrder"`
	Cache           CacheInfo `json:"cache"`
}

// Response is the assembled search payload: one page plus its metadata.
// This is also the unit stored in the response cache.
type Response struct {
	Page     Page     `json:"page"`
	Metadata Metadata `json:"metadata"`
}
