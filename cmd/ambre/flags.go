package main

import "flag"

// config holds the demo CLI's resolved flags.
type config struct {
	TransactionsFile string
	SnapshotFile     string
	Consequents      string
	MaxAntecedents   int
	MinConfidence    float64
	MinSupport       float64
	Predict          string
	Verbosity        string
	LogFormat        string
}

// defaultConfig returns config with ambre's package-level defaults applied.
func defaultConfig() config {
	return config{
		MaxAntecedents: 0, // 0 means "unlimited" on the CLI surface
		MinConfidence:  0,
		MinSupport:     0,
		Verbosity:      "info",
		LogFormat:      "json",
	}
}

// newFlagSet creates a flag.FlagSet that binds all CLI flags to cfg. The
// FlagSet uses ContinueOnError so callers control error handling.
func newFlagSet(cfg *config) *flag.FlagSet {
	fs := flag.NewFlagSet("ambre", flag.ContinueOnError)
	fs.StringVar(&cfg.TransactionsFile, "transactions", cfg.TransactionsFile, "path to a JSON-lines file of transactions (one []string per line)")
	fs.StringVar(&cfg.SnapshotFile, "snapshot", cfg.SnapshotFile, "path to save a compressed database snapshot after mining")
	fs.StringVar(&cfg.Consequents, "consequents", cfg.Consequents, "comma-separated list of items to treat as rule consequents")
	fs.IntVar(&cfg.MaxAntecedents, "max-antecedents", cfg.MaxAntecedents, "cap on antecedents materialized per transaction (0 = unlimited)")
	fs.Float64Var(&cfg.MinConfidence, "min-confidence", cfg.MinConfidence, "minimum confidence for derived rules")
	fs.Float64Var(&cfg.MinSupport, "min-support", cfg.MinSupport, "minimum support for derived rules")
	fs.StringVar(&cfg.Predict, "predict", cfg.Predict, "comma-separated antecedents to predict consequents for, instead of deriving rules")
	fs.StringVar(&cfg.Verbosity, "verbosity", cfg.Verbosity, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log rendering: json, text, color")
	return fs
}
