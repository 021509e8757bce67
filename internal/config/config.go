// Package config defines the canonical configuration model for the pipeline.
// It is intentionally small, explicit, and dependency-free.
//
// This job has no CLI flags, environment variables, or config files: the run
// parameters are compile-time constants in cmd/etl, assembled into a Pipeline
// value and statically validated before the run. Keeping the model
// JSON-taggable costs nothing and leaves the door open for file-driven
// pipelines later.
package config

import "encoding/json"

// Pipeline describes one full ETL run.
type Pipeline struct {
	// Job names the run for logging.
	Job string `json:"job"`

	// Source describes where input data comes from.
	Source Source `json:"source"`

	// Parser configures how raw bytes become records.
	Parser Parser `json:"parser"`

	// Address configures the address-repair stage.
	Address Address `json:"address"`

	// Transform lists the ordered transformations applied to parsed records.
	Transform []Transform `json:"transform"`

	// Storage describes where good records are written.
	Storage Storage `json:"storage"`
}

// Source identifies the data source.
type Source struct {
	// Kind selects the source implementation. Current value: "file".
	Kind string `json:"kind"`

	// File carries options for the "file" source kind.
	File SourceFile `json:"file"`
}

// SourceFile holds configuration for the "file" source kind.
type SourceFile struct {
	Path string `json:"path"`
}

// Parser selects how to parse the raw source into rows/columns.
type Parser struct {
	// Kind selects the parser implementation. Current value: "csv".
	Kind string `json:"kind"`

	// Options is a free-form map interpreted by the parser implementation.
	// For CSV: has_header (bool), comma (string), trim_space (bool),
	// header_map (object).
	Options Options `json:"options"`
}

// Address configures the address repair/expansion stage.
type Address struct {
	// Column is the cleaned name of the address column.
	Column string `json:"column"`

	// ReviewPath is where malformed original rows are written for manual
	// review. Overwritten every run.
	ReviewPath string `json:"review_path"`
}

// Transform defines a single transformation step. The sequence of steps forms
// the normalization chain executed by the pipeline.
type Transform struct {
	// Kind selects the transform implementation ("dedupe", "lowercase").
	Kind string `json:"kind"`

	// Options is a free-form map interpreted by the selected transform.
	Options Options `json:"options"`
}

// Storage selects the sink used to persist good records.
type Storage struct {
	// Kind selects the storage backend ("sqlite", "postgres").
	Kind string `json:"kind"`

	// DB configures the selected backend.
	DB DBConfig `json:"db"`
}

// DBConfig configures the database sink.
type DBConfig struct {
	// DSN is the backend connection string (a file path for SQLite).
	DSN string `json:"dsn"`

	// Table is the destination table name, replaced wholesale each run.
	Table string `json:"table"`
}

// Options fetches typed values from arbitrary maps without a third-party
// configuration library. It performs minimal coercion and returns the
// provided default when a key is absent or has an unexpected type.
type Options map[string]any

// String returns the string value for key or def.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Rune returns the first rune of a string value for key, or def. Useful for
// single-character parser settings such as a CSV delimiter.
func (o Options) Rune(key string, def rune) rune {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			return []rune(s)[0]
		}
	}
	return def
}

// StringMap returns a map[string]string for key when the value is an object
// whose values are strings. Non-string values are ignored.
func (o Options) StringMap(key string) map[string]string {
	res := map[string]string{}
	if v, ok := o[key]; ok {
		if m, ok := v.(map[string]any); ok {
			for k, vv := range m {
				if s, ok := vv.(string); ok {
					res[k] = s
				}
			}
		}
	}
	return res
}

// UnmarshalJSON decodes a missing or null "options" object to a non-nil,
// empty Options map, removing nil checks at call sites.
func (o *Options) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	var tmp map[string]any
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
