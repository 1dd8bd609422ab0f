package ambremetrics

// DatabaseMetrics groups the fixed set of metrics a Database instruments
// itself against, bound once to a Registry at construction time instead of
// being looked up by string key at every call site.
type DatabaseMetrics struct {
	TransactionsInserted *Counter
	TransactionsRemoved  *Counter
	TrieNodes            *Gauge
	InsertDuration       *Histogram
	RemoveDuration       *Histogram
	DeriveRulesDuration  *Histogram
	PredictDuration      *Histogram
}

// NewDatabaseMetrics binds ambre's standard metrics to registry, creating
// each underlying Counter/Gauge/Histogram on first use.
func NewDatabaseMetrics(registry *Registry) *DatabaseMetrics {
	return &DatabaseMetrics{
		TransactionsInserted: registry.Counter("ambre.transactions.inserted"),
		TransactionsRemoved:  registry.Counter("ambre.transactions.removed"),
		TrieNodes:            registry.Gauge("ambre.trie.nodes"),
		InsertDuration:       registry.Histogram("ambre.insert.duration_ms"),
		RemoveDuration:       registry.Histogram("ambre.remove.duration_ms"),
		DeriveRulesDuration:  registry.Histogram("ambre.derive_rules.duration_ms"),
		PredictDuration:      registry.Histogram("ambre.predict.duration_ms"),
	}
}
