// Command ambre is a demo CLI around the ambre association-rule-mining
// library: it reads a JSON-lines file of transactions, builds an in-memory
// Database, and either derives frequent-itemset rules or predicts
// consequents for a supplied antecedent set.
//
// Usage:
//
//	ambre --transactions=baskets.jsonl --consequents=beer,diapers
//	ambre --transactions=baskets.jsonl --consequents=beer --predict=milk,bread
//
// Flags:
//
//	--transactions     path to a JSON-lines file of transactions
//	--snapshot         path to save a compressed database snapshot after mining
//	--consequents      comma-separated declared consequents
//	--max-antecedents  cap on antecedents per transaction (0 = unlimited)
//	--min-confidence   minimum confidence for derived rules
//	--min-support      minimum support for derived rules
//	--predict          antecedents to predict consequents for
//	--verbosity        log level: debug, info, warn, error
//	--log-format       log rendering: json, text, color
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/timoklimmer/ambre"
	"github.com/timoklimmer/ambre/ambrelog"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the actual entry point, returning an exit code. It accepts CLI
// arguments (without the program name) so it can be tested in isolation.
func run(args []string) int {
	cfg := defaultConfig()
	fs := newFlagSet(&cfg)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	if cfg.TransactionsFile == "" {
		fmt.Fprintln(os.Stderr, "error: --transactions is required")
		return 2
	}

	logger := ambrelog.NewRoot(slogHandler(cfg.LogFormat, slogLevel(cfg.Verbosity)))
	ambrelog.SetRoot(logger)
	log := logger.For(ambrelog.ComponentCLI)

	transactions, err := readTransactions(cfg.TransactionsFile)
	if err != nil {
		log.Error("failed to read transactions", "error", err)
		return 1
	}
	log.Info("loaded transactions", "count", len(transactions))

	var consequents []string
	if cfg.Consequents != "" {
		consequents = strings.Split(cfg.Consequents, ",")
	}
	opts := []ambre.Option{ambre.WithConsequents(consequents...)}
	if cfg.MaxAntecedents > 0 {
		opts = append(opts, ambre.WithMaxAntecedentsLength(cfg.MaxAntecedents))
	}
	settings := ambre.NewSettings(opts...)
	db := ambre.NewDatabase(settings)

	for i, tx := range transactions {
		if err := db.InsertTransaction(tx); err != nil {
			log.Warn("skipping transaction", "index", i, "error", err)
		}
	}
	log.Info("mining complete", "transactions", db.Trie().NumberTransactions(), "nodes", db.Trie().NumberNodes())

	if cfg.Predict != "" {
		antecedents := strings.Split(cfg.Predict, ",")
		predictions, err := db.PredictConsequents(antecedents, ambre.PredictOptions{SkipUnknownAntecedents: true})
		if err != nil {
			log.Error("predict failed", "error", err)
			return 1
		}
		for _, p := range predictions {
			fmt.Printf("%s => %s: %.4f\n", cfg.Predict, p.Consequent, p.Confidence)
		}
	} else {
		filters := ambre.RuleFilters{MinConfidence: cfg.MinConfidence, MinSupport: cfg.MinSupport}
		rules, err := db.DeriveRules(filters, true)
		if err != nil {
			log.Error("derive rules failed", "error", err)
			return 1
		}
		for _, r := range rules {
			fmt.Printf("%s => %s  (confidence=%.4f, support=%.4f, lift=%.4f, occurrences=%d)\n",
				db.ItemsetToString(r.Antecedents), db.ItemsetToString(r.Consequents),
				r.Confidence, r.Support, r.Lift, r.Occurrences)
		}
	}

	if cfg.SnapshotFile != "" {
		if err := db.SaveToFile(cfg.SnapshotFile); err != nil {
			log.Error("failed to save snapshot", "error", err)
			return 1
		}
	}

	return 0
}

// readTransactions reads a JSON-lines file where each line is a JSON array
// of item strings.
func readTransactions(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var transactions [][]string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var tx []string
		if err := json.Unmarshal([]byte(line), &tx); err != nil {
			return nil, fmt.Errorf("parse transaction line %q: %w", line, err)
		}
		transactions = append(transactions, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return transactions, nil
}

// slogHandler picks the slog.Handler matching --log-format. "text" and
// "color" are rendered through ambrelog's own Formatter implementations via
// a FormatterHandler adapter; "json" uses slog's built-in JSON handler
// directly since JSONFormatter would only reproduce it.
func slogHandler(format string, level slog.Level) slog.Handler {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "text":
		return ambrelog.NewFormatterHandler(&ambrelog.TextFormatter{}, os.Stderr, level)
	case "color":
		return ambrelog.NewFormatterHandler(&ambrelog.ColorFormatter{}, os.Stderr, level)
	default:
		return slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
}

func slogLevel(verbosity string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(verbosity)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
