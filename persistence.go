package ambre

import (
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/timoklimmer/ambre/internal/wire"
)

// snapshotHeader identifies the writer and schema of a persisted database,
// per spec.md §6.
type snapshotHeader struct {
	PackageVersion  string
	SchemaVersion   int
	LanguageVersion string
}

// settingsRecord is Settings flattened into wire-encodable fields. Pointer
// fields become a Set/Value pair since wire has no native "optional".
type settingsRecord struct {
	Consequents           []string
	NormalizeWhitespace   bool
	CaseInsensitive       bool
	HasMaxAntecedents     bool
	MaxAntecedentsLength  int
	ItemSeparator         string
	ColumnValueSeparator  string
	OmitColumnNames       bool
	HasItemAlphabet       bool
	ItemAlphabet          string
	FoldFullwidthVariants bool
}

func settingsToRecord(s Settings) settingsRecord {
	r := settingsRecord{
		Consequents:           s.Consequents(),
		NormalizeWhitespace:   s.NormalizeWhitespace(),
		CaseInsensitive:       s.CaseInsensitive(),
		ItemSeparator:         s.ItemSeparator(),
		ColumnValueSeparator:  s.ColumnValueSeparator(),
		OmitColumnNames:       s.OmitColumnNames(),
		FoldFullwidthVariants: s.FoldFullwidthVariants(),
	}
	if max, ok := s.MaxAntecedentsLength(); ok {
		r.HasMaxAntecedents = true
		r.MaxAntecedentsLength = max
	}
	if alphabet, ok := s.ItemAlphabet(); ok {
		r.HasItemAlphabet = true
		r.ItemAlphabet = alphabet
	}
	return r
}

func settingsFromRecord(r settingsRecord) Settings {
	opts := []Option{
		WithConsequents(r.Consequents...),
		WithNormalizeWhitespace(r.NormalizeWhitespace),
		WithCaseInsensitive(r.CaseInsensitive),
		WithItemSeparator(r.ItemSeparator),
		WithColumnValueSeparator(r.ColumnValueSeparator),
		WithOmitColumnNames(r.OmitColumnNames),
		WithFoldFullwidthVariants(r.FoldFullwidthVariants),
	}
	if r.HasMaxAntecedents {
		opts = append(opts, WithMaxAntecedentsLength(r.MaxAntecedentsLength))
	}
	if r.HasItemAlphabet {
		opts = append(opts, WithItemAlphabet(r.ItemAlphabet))
	} else {
		opts = append(opts, WithItemAlphabet(""))
	}
	return NewSettings(opts...)
}

// nodeRecord persists one non-root trie node by its full uncompressed path,
// the same path-rebuild technique Merge uses.
type nodeRecord struct {
	Path         []string
	IsConsequent bool
	Occurrences  int
}

type commonSenseRuleRecord struct {
	Antecedents []string
	Consequents []string
	Confidence  float64
}

type snapshot struct {
	Header           snapshotHeader
	Settings         settingsRecord
	NumberTransactions int
	Nodes            []nodeRecord
	CommonSenseRules []commonSenseRuleRecord
}

// AsBytes serializes t (and, if non-nil, commonSense) into a self-describing,
// zstd-compressed snapshot (spec.md §6).
func AsBytes(t *Trie, commonSense *CommonSenseRuleSet) ([]byte, error) {
	snap := snapshot{
		Header: snapshotHeader{
			PackageVersion:  PackageVersion,
			SchemaVersion:   SchemaVersion,
			LanguageVersion: LanguageVersion,
		},
		Settings:           settingsToRecord(t.settings),
		NumberTransactions: t.numberTransactions,
	}
	t.DepthFirstWalk(false, func(n *Node) WalkControl {
		snap.Nodes = append(snap.Nodes, nodeRecord{
			Path:         n.Path(),
			IsConsequent: n.isConsequent,
			Occurrences:  n.occurrences,
		})
		return WalkContinue
	})
	if commonSense != nil {
		for _, r := range commonSense.Rules() {
			snap.CommonSenseRules = append(snap.CommonSenseRules, commonSenseRuleRecord{
				Antecedents: r.Antecedents,
				Consequents: r.Consequents,
				Confidence:  r.Confidence,
			})
		}
	}

	raw, err := wire.EncodeToBytes(snap)
	if err != nil {
		return nil, fmt.Errorf("ambre: encode snapshot: %w", err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("ambre: create zstd writer: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(raw, nil), nil
}

// FromBytes deserializes a snapshot written by AsBytes, rebuilding both the
// Trie and its common-sense rule set. Returns ErrSchemaMismatch if the
// snapshot's schema version does not match SchemaVersion.
func FromBytes(data []byte) (*Trie, *CommonSenseRuleSet, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, nil, fmt.Errorf("ambre: create zstd reader: %w", err)
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("ambre: decompress snapshot: %w", err)
	}

	var snap snapshot
	if err := wire.DecodeBytes(raw, &snap); err != nil {
		return nil, nil, fmt.Errorf("ambre: decode snapshot: %w", err)
	}
	if snap.Header.SchemaVersion != SchemaVersion {
		return nil, nil, fmt.Errorf("%w: snapshot is schema %d, running schema is %d",
			ErrSchemaMismatch, snap.Header.SchemaVersion, SchemaVersion)
	}

	settings := settingsFromRecord(snap.Settings)
	t := NewTrie(settings)
	for _, rec := range snap.Nodes {
		node := t.root
		for _, item := range rec.Path {
			child, err := t.getOrCreateChild(node, item, settings.IsConsequent(item))
			if err != nil {
				return nil, nil, fmt.Errorf("ambre: rebuild node %v: %w", rec.Path, err)
			}
			node = child
		}
		node.occurrences = rec.Occurrences
	}
	t.numberTransactions = snap.NumberTransactions

	commonSense := NewCommonSenseRuleSet()
	for _, rec := range snap.CommonSenseRules {
		commonSense.Insert(rec.Antecedents, rec.Consequents, rec.Confidence)
	}

	return t, commonSense, nil
}

// SaveToFile writes AsBytes' output to path.
func SaveToFile(t *Trie, commonSense *CommonSenseRuleSet, path string) error {
	data, err := AsBytes(t, commonSense)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadFromFile reads and decodes a snapshot previously written by SaveToFile.
func LoadFromFile(path string) (*Trie, *CommonSenseRuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("ambre: read snapshot file: %w", err)
	}
	return FromBytes(data)
}
