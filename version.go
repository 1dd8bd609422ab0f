package ambre

// PackageVersion is ambre's semantic version, embedded in every snapshot
// header for diagnostics (spec.md §6).
const PackageVersion = "2.0.0"

// SchemaVersion gates snapshot compatibility: FromBytes/LoadFromFile refuse
// to load a snapshot whose SchemaVersion differs from this one, returning
// ErrSchemaMismatch. Bump it whenever the on-disk record layout changes.
const SchemaVersion = 1

// LanguageVersion identifies the implementation language/runtime that wrote
// a snapshot, carried for diagnostics only and never checked on load.
const LanguageVersion = "go"
