package types

import (
	"encoding/json"
	"fmt"
)

// Datatype names as they appear in index mappings.
const (
	KeywordDatatype    = "keyword"
	TextDatatype       = "text"
	TokenCountDatatype = "token_count"
	CompletionDatatype = "completion"
)

// --------------------------------------------------------------------------
// Index Options
// --------------------------------------------------------------------------

// IndexOptions controls what information is added to the inverted index,
// for search and highlighting purposes.
type IndexOptions uint8

const (
	// IndexOptsDocs - only the doc number is indexed. Can answer the
	// question: does this term exist in this field?
	IndexOptsDocs IndexOptions = iota
	// IndexOptsFreqs - doc number and term frequencies are indexed.
	// Term frequencies are used to score repeated terms higher.
	IndexOptsFreqs
	// IndexOptsPositions - doc number, term frequencies and term
	// positions are indexed. Positions can be used for proximity or
	// phrase queries.
	IndexOptsPositions
	// IndexOptsOffsets - doc number, term frequencies, positions and
	// start and end character offsets are indexed. Offsets are used by
	// the postings highlighter.
	IndexOptsOffsets
)

// String returns the wire representation of the option.
func (o IndexOptions) String() string {
	switch o {
	case IndexOptsDocs:
		return "docs"
	case IndexOptsFreqs:
		return "freqs"
	case IndexOptsPositions:
		return "positions"
	case IndexOptsOffsets:
		return "offsets"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the option as its wire string.
func (o IndexOptions) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON deserializes the option from its wire string.
func (o *IndexOptions) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "docs":
		*o = IndexOptsDocs
	case "freqs":
		*o = IndexOptsFreqs
	case "positions":
		*o = IndexOptsPositions
	case "offsets":
		*o = IndexOptsOffsets
	default:
		return fmt.Errorf("unknown index options: %s", s)
	}
	return nil
}

// --------------------------------------------------------------------------
// String Field Mappings
// --------------------------------------------------------------------------

// StringField is a string sub-field mapping. String fields can have a
// number of alternative representations for different purposes, declared
// under the parent field's "fields" entry.
type StringField interface {
	stringField()
}

// KeywordFieldMapping maps a field indexed as a single structured term.
type KeywordFieldMapping struct {
	// Field-level index time boosting (defaults to 1.0)
	Boost *float32 `json:"boost,omitempty"`
	// Should the field be stored on disk in a column-stride fashion so
	// it can later be used for sorting, aggregations or scripting?
	DocValues *bool `json:"doc_values,omitempty"`
	// Strings longer than IgnoreAbove are not indexed
	IgnoreAbove *uint32 `json:"ignore_above,omitempty"`
	// Should the field be searchable?
	Index *bool `json:"index,omitempty"`
	// A value substituted for explicit nulls at index time
	NullValue string `json:"null_value,omitempty"`
	// Whether the field value should be stored and retrievable
	// separately from the _source field
	Store *bool `json:"store,omitempty"`
}

func (KeywordFieldMapping) stringField() {}

func (m KeywordFieldMapping) MarshalJSON() ([]byte, error) {
	type alias KeywordFieldMapping
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: KeywordDatatype, alias: alias(m)})
}

// TextFieldMapping maps a field indexed as analyzed full text.
type TextFieldMapping struct {
	// The analyzer used both at index-time and at search-time (unless
	// overridden by SearchAnalyzer); defaults to the standard analyzer
	Analyzer string `json:"analyzer,omitempty"`
	// The search analyzer to use, defaults to the value of Analyzer
	SearchAnalyzer string `json:"search_analyzer,omitempty"`
	// Field-level index time boosting (defaults to 1.0)
	Boost *float32 `json:"boost,omitempty"`
	// Can the field use in-memory fielddata for sorting and aggregations?
	Fielddata *bool `json:"fielddata,omitempty"`
	// Should the field be searchable?
	Index *bool `json:"index,omitempty"`
	// What information is added to the inverted index
	IndexOptions *IndexOptions `json:"index_options,omitempty"`
	// Whether the field value should be stored and retrievable
	// separately from the _source field
	Store *bool `json:"store,omitempty"`
	// Alternative representations of the same value, e.g. a keyword
	// sub-field for sorting on an otherwise analyzed field
	Fields map[string]StringField `json:"fields,omitempty"`
}

func (TextFieldMapping) stringField() {}

func (m TextFieldMapping) MarshalJSON() ([]byte, error) {
	type alias TextFieldMapping
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: TextDatatype, alias: alias(m)})
}

// TokenCountFieldMapping maps a sub-field indexing the number of tokens
// in the parent string.
type TokenCountFieldMapping struct {
	// The analyzer used to split the value into tokens
	Analyzer string `json:"analyzer,omitempty"`
	// Field-level index time boosting (defaults to 1.0)
	Boost *float32 `json:"boost,omitempty"`
	// Should the field be stored on disk in a column-stride fashion?
	DocValues *bool `json:"doc_values,omitempty"`
	// Should the field be searchable?
	Index *bool `json:"index,omitempty"`
	// Whether the field value should be stored separately from _source
	Store *bool `json:"store,omitempty"`
}

func (TokenCountFieldMapping) stringField() {}

func (m TokenCountFieldMapping) MarshalJSON() ([]byte, error) {
	type alias TokenCountFieldMapping
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: TokenCountDatatype, alias: alias(m)})
}

// CompletionFieldMapping maps a sub-field backing a completion suggester.
type CompletionFieldMapping struct {
	// The analyzer used both at index-time and at search-time
	Analyzer string `json:"analyzer,omitempty"`
	// The search analyzer to use, defaults to the value of Analyzer
	SearchAnalyzer string `json:"search_analyzer,omitempty"`
	// Preserves the separators (defaults to true). If disabled, a field
	// starting with "Foo Fighters" matches a suggestion for "foof".
	PreserveSeparators *bool `json:"preserve_separators,omitempty"`
	// Enables position increments (defaults to true)
	PreservePositionIncrements *bool `json:"preserve_position_increments,omitempty"`
	// Limits the length of a single input (defaults to 50 UTF-16 code
	// points); only applied at index time
	MaxInputLength *uint32 `json:"max_input_length,omitempty"`
}

func (CompletionFieldMapping) stringField() {}

func (m CompletionFieldMapping) MarshalJSON() ([]byte, error) {
	type alias CompletionFieldMapping
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: CompletionDatatype, alias: alias(m)})
}

// --------------------------------------------------------------------------
// Defaults
// --------------------------------------------------------------------------

// defaultIgnoreAbove is the keyword sub-field cutoff used by the default
// string mapping.
const defaultIgnoreAbove uint32 = 256

// DefaultStringMapping returns the default mapping for a string value: an
// analyzed text field with a raw keyword sub-field for sorting and
// aggregations.
func DefaultStringMapping() TextFieldMapping {
	ignoreAbove := defaultIgnoreAbove
	return TextFieldMapping{
		Fields: map[string]StringField{
			"keyword": KeywordFieldMapping{
				IgnoreAbove: &ignoreAbove,
			},
		},
	}
}
