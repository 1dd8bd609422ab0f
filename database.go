package ambre

import (
	"math/rand/v2"
	"os"
	"strings"

	"github.com/timoklimmer/ambre/ambrelog"
	"github.com/timoklimmer/ambre/ambremetrics"
)

// DatabaseOption configures a Database at construction time.
type DatabaseOption func(*Database)

// WithLogger overrides the Logger a Database logs through. Defaults to
// ambrelog.Default().For(ambrelog.ComponentDatabase).
func WithLogger(l *ambrelog.Logger) DatabaseOption {
	return func(d *Database) { d.log = l }
}

// WithMetricsRegistry overrides the Registry a Database instruments into.
// Defaults to ambremetrics.DefaultRegistry.
func WithMetricsRegistry(r *ambremetrics.Registry) DatabaseOption {
	return func(d *Database) { d.metrics = ambremetrics.NewDatabaseMetrics(r) }
}

// Database is ambre's external, instrumented API: a Trie of mined itemsets
// plus the common-sense rules used to short-circuit prediction and filter
// redundant mined rules (spec.md §3-§7).
type Database struct {
	trie        *Trie
	commonSense *CommonSenseRuleSet
	log         *ambrelog.Logger
	metrics     *ambremetrics.DatabaseMetrics
}

func defaultLogger() *ambrelog.Logger {
	return ambrelog.Default().For(ambrelog.ComponentDatabase)
}

func defaultMetrics() *ambremetrics.DatabaseMetrics {
	return ambremetrics.NewDatabaseMetrics(ambremetrics.DefaultRegistry)
}

// NewDatabase creates an empty Database for the given settings.
func NewDatabase(settings Settings, opts ...DatabaseOption) *Database {
	d := &Database{
		trie:        NewTrie(settings),
		commonSense: NewCommonSenseRuleSet(),
		log:         defaultLogger(),
		metrics:     defaultMetrics(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Trie exposes the underlying trie for callers that need direct access to
// node-level operations (walks, frontier, merge).
func (d *Database) Trie() *Trie { return d.trie }

// CommonSenseRules exposes the underlying common-sense rule set.
func (d *Database) CommonSenseRules() *CommonSenseRuleSet { return d.commonSense }

// Settings returns the database's immutable configuration.
func (d *Database) Settings() Settings { return d.trie.Settings() }

// InsertTransaction inserts transaction into the trie, incrementing
// TransactionsInserted and recording InsertDuration.
func (d *Database) InsertTransaction(transaction []string) error {
	var err error
	d.metrics.InsertDuration.Time(func() {
		err = d.trie.InsertTransaction(transaction)
	})
	if err != nil {
		d.log.OperationFailed("insert", err)
		return err
	}
	d.metrics.TransactionsInserted.Inc()
	d.metrics.TrieNodes.Set(int64(d.trie.NumberNodes()))
	d.log.TransactionInserted(len(transaction), d.trie.NumberNodes())
	return nil
}

// InsertTransactionSampled inserts transaction with probability sampleRatio,
// returning whether it was actually inserted. sampleRatio must be in [0,1]
// or ErrRangeError is returned (spec.md's SUPPLEMENTED FEATURES: sampled
// ingestion for very large transaction streams).
func (d *Database) InsertTransactionSampled(transaction []string, sampleRatio float64) (bool, error) {
	if sampleRatio < 0 || sampleRatio > 1 {
		return false, ErrRangeError
	}
	if rand.Float64() >= sampleRatio {
		return false, nil
	}
	if err := d.InsertTransaction(transaction); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveTransaction removes transaction from the trie. See Trie.RemoveTransaction.
func (d *Database) RemoveTransaction(transaction []string, silent bool) error {
	var err error
	d.metrics.RemoveDuration.Time(func() {
		err = d.trie.RemoveTransaction(transaction, silent)
	})
	if err != nil {
		d.log.OperationFailed("remove", err)
		return err
	}
	d.metrics.TransactionsRemoved.Inc()
	d.metrics.TrieNodes.Set(int64(d.trie.NumberNodes()))
	d.log.TransactionRemoved(len(transaction), d.trie.NumberNodes())
	return nil
}

// HasItemset reports whether the given raw (un-normalized) items form a
// known itemset, after normalizing and canonically ordering them.
func (d *Database) HasItemset(items []string) (bool, error) {
	normalized := d.trie.settings.NormalizeTransaction(items)
	consequents, antecedents := d.trie.settings.Partition(normalized)
	canonical := append(append([]string(nil), consequents...), antecedents...)
	return d.trie.HasItemset(canonical)
}

// GetItemset looks up the given raw items and returns their occurrences and
// support, or ErrUnknownItemset if the itemset was never inserted.
func (d *Database) GetItemset(items []string) (occurrences int, support float64, err error) {
	normalized := d.trie.settings.NormalizeTransaction(items)
	consequents, antecedents := d.trie.settings.Partition(normalized)
	canonical := append(append([]string(nil), consequents...), antecedents...)
	node, err := d.trie.GetNode(canonical, LookupOptions{})
	if err != nil {
		return 0, 0, err
	}
	return node.Occurrences(), node.Support(), nil
}

// InsertCommonSenseRule adds a single expert-supplied rule.
func (d *Database) InsertCommonSenseRule(antecedents, consequents []string, confidence float64) {
	normalizedAntecedents := d.trie.settings.NormalizeTransaction(antecedents)
	normalizedConsequents := d.trie.settings.NormalizeTransaction(consequents)
	sortByCaseFold(normalizedAntecedents)
	sortByCaseFold(normalizedConsequents)
	d.commonSense.Insert(normalizedAntecedents, normalizedConsequents, confidence)
}

// InsertCommonSenseRules adds a batch of expert-supplied rules in one
// minimisation pass.
func (d *Database) InsertCommonSenseRules(rules []CommonSenseRule) {
	normalized := make([]CommonSenseRule, len(rules))
	for i, r := range rules {
		a := d.trie.settings.NormalizeTransaction(r.Antecedents)
		c := d.trie.settings.NormalizeTransaction(r.Consequents)
		sortByCaseFold(a)
		sortByCaseFold(c)
		normalized[i] = CommonSenseRule{Antecedents: a, Consequents: c, Confidence: r.Confidence}
	}
	d.commonSense.InsertAll(normalized)
}

// ClearCommonSenseRules removes every common-sense rule.
func (d *Database) ClearCommonSenseRules() {
	d.commonSense.Clear()
}

// DeriveFrequentItemsets returns every itemset passing filters.
func (d *Database) DeriveFrequentItemsets(filters ItemsetFilters, filterToConsequentOnly bool) []ItemsetRow {
	return d.trie.DeriveFrequentItemsets(filters, filterToConsequentOnly, d.trie.settings.OmitColumnNames())
}

// DeriveRules mines association rules from the trie, using the database's
// common-sense rules to suppress redundancy.
func (d *Database) DeriveRules(filters RuleFilters, nonAntecedentsRules bool) ([]Rule, error) {
	var rules []Rule
	var err error
	d.metrics.DeriveRulesDuration.Time(func() {
		rules, err = d.trie.DeriveRules(d.commonSense, filters, nonAntecedentsRules, d.trie.settings.OmitColumnNames())
	})
	if err != nil {
		d.log.OperationFailed("derive_rules", err)
		return rules, err
	}
	d.log.RulesDerived(len(rules))
	return rules, err
}

// PredictConsequents predicts confidence for each requested (or, if none
// requested, every declared) consequent given antecedents.
func (d *Database) PredictConsequents(antecedents []string, opts PredictOptions) ([]Prediction, error) {
	var predictions []Prediction
	var err error
	d.metrics.PredictDuration.Time(func() {
		predictions, err = d.trie.Predict(antecedents, d.commonSense, opts)
	})
	if err != nil {
		d.log.OperationFailed("predict", err)
	}
	return predictions, err
}

// Merge merges d and other via the package-level Merge, which reuses the
// larger of the two tries as the result and modifies it in place. The
// returned Database wraps that trie and shares d's logger and metrics. Both
// databases' common-sense rule sets are unioned and re-minimised.
func (d *Database) Merge(other *Database) (*Database, error) {
	mergedTrie, err := Merge(d.trie, other.trie)
	if err != nil {
		return nil, err
	}
	merged := &Database{
		trie:        mergedTrie,
		commonSense: NewCommonSenseRuleSet(),
		log:         d.log,
		metrics:     d.metrics,
	}
	merged.commonSense.InsertAll(d.commonSense.Rules())
	merged.commonSense.InsertAll(other.commonSense.Rules())
	return merged, nil
}

// AsBytes serializes the database to a self-describing, compressed snapshot.
func (d *Database) AsBytes() ([]byte, error) {
	data, err := AsBytes(d.trie, d.commonSense)
	if err != nil {
		d.log.OperationFailed("snapshot", err)
		return nil, err
	}
	d.log.Info("snapshot serialized", "bytes", len(data))
	return data, nil
}

// SaveToFile writes the database's snapshot to path.
func (d *Database) SaveToFile(path string) error {
	if err := SaveToFile(d.trie, d.commonSense, path); err != nil {
		d.log.OperationFailed("snapshot", err)
		return err
	}
	info, err := os.Stat(path)
	bytes := 0
	if err == nil {
		bytes = int(info.Size())
	}
	d.log.SnapshotWritten(path, bytes)
	return nil
}

// DatabaseFromBytes deserializes a snapshot written by Database.AsBytes.
func DatabaseFromBytes(data []byte, opts ...DatabaseOption) (*Database, error) {
	trie, commonSense, err := FromBytes(data)
	if err != nil {
		return nil, err
	}
	d := &Database{
		trie:        trie,
		commonSense: commonSense,
		log:         defaultLogger(),
		metrics:     defaultMetrics(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// DatabaseFromFile reads and decodes a snapshot previously written by
// Database.SaveToFile.
func DatabaseFromFile(path string, opts ...DatabaseOption) (*Database, error) {
	trie, commonSense, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	d := &Database{
		trie:        trie,
		commonSense: commonSense,
		log:         defaultLogger(),
		metrics:     defaultMetrics(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// ItemsetToString renders items joined by the database's configured item
// separator (spec.md's SUPPLEMENTED FEATURES, mirroring the Python
// original's itemset_to_string helper).
func (d *Database) ItemsetToString(items []string) string {
	return strings.Join(items, d.trie.settings.ItemSeparator())
}

// StringToItemset splits s on the database's configured item separator,
// the inverse of ItemsetToString.
func (d *Database) StringToItemset(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, d.trie.settings.ItemSeparator())
}
