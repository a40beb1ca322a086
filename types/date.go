package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// DateDatatype is the datatype name for date fields.
const DateDatatype = "date"

// --------------------------------------------------------------------------
// Date Formats
// --------------------------------------------------------------------------

// DateFormat formats and parses the values of a date field. The zero
// format for a mapping is BasicDateTime.
type DateFormat interface {
	// Name returns the format name as declared in a field mapping
	Name() string
	// Format renders a time in this format
	Format(t time.Time) string
	// Parse reads a time in this format
	Parse(s string) (time.Time, error)
}

// BasicDateTime is the basic_date_time format: a basic formatter that
// combines a basic date and time separated by a T, e.g.
// 20151126T145543.778Z.
type BasicDateTime struct{}

const basicDateTimeLayout = "20060102T150405.000Z0700"

func (BasicDateTime) Name() string { return "basic_date_time" }

func (BasicDateTime) Format(t time.Time) string {
	return t.UTC().Format(basicDateTimeLayout)
}

func (BasicDateTime) Parse(s string) (time.Time, error) {
	t, err := time.Parse(basicDateTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse %q as basic_date_time: %v", s, err)
	}
	return t.UTC(), nil
}

// EpochMillis is the epoch_millis format: milliseconds since the epoch.
type EpochMillis struct{}

func (EpochMillis) Name() string { return "epoch_millis" }

func (EpochMillis) Format(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

func (EpochMillis) Parse(s string) (time.Time, error) {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse %q as epoch_millis: %v", s, err)
	}
	return time.UnixMilli(ms).UTC(), nil
}

// --------------------------------------------------------------------------
// Date
// --------------------------------------------------------------------------

// Date couples a UTC time value with the format it is indexed with.
type Date struct {
	Value  time.Time
	Format DateFormat
}

// NewDate creates a date from a time value, stored as UTC.
func NewDate(t time.Time, f DateFormat) Date {
	if f == nil {
		f = BasicDateTime{}
	}
	return Date{Value: t.UTC(), Format: f}
}

// Now returns the current system time as a date in the given format.
func Now(f DateFormat) Date {
	return NewDate(time.Now(), f)
}

// ParseDate parses a date string in the given format.
func ParseDate(f DateFormat, s string) (Date, error) {
	if f == nil {
		f = BasicDateTime{}
	}
	t, err := f.Parse(s)
	if err != nil {
		return Date{}, err
	}
	return Date{Value: t, Format: f}, nil
}

// Remap returns the same instant in a different format.
func (d Date) Remap(f DateFormat) Date {
	return NewDate(d.Value, f)
}

// String renders the date in its format.
func (d Date) String() string {
	if d.Format == nil {
		return BasicDateTime{}.Format(d.Value)
	}
	return d.Format.Format(d.Value)
}

// MarshalJSON serializes the date in its format. epoch_millis values are
// written as a bare number, everything else as a string.
func (d Date) MarshalJSON() ([]byte, error) {
	s := d.String()
	if _, ok := d.Format.(EpochMillis); ok {
		return []byte(s), nil
	}
	return json.Marshal(s)
}

// --------------------------------------------------------------------------
// Date Field Mapping
// --------------------------------------------------------------------------

// DateFieldMapping maps a date field together with its format.
type DateFieldMapping struct {
	// The format indexed values must conform to
	Format string `json:"format,omitempty"`
	// Field-level index time boosting (defaults to 1.0)
	Boost *float32 `json:"boost,omitempty"`
	// Should the field be stored on disk in a column-stride fashion?
	DocValues *bool `json:"doc_values,omitempty"`
	// If true, malformed values are ignored rather than rejected
	IgnoreMalformed *bool `json:"ignore_malformed,omitempty"`
	// Should the field be searchable?
	Index *bool `json:"index,omitempty"`
	// A value substituted for explicit nulls at index time
	NullValue string `json:"null_value,omitempty"`
	// Whether the field value should be stored separately from _source
	Store *bool `json:"store,omitempty"`
}

func (m DateFieldMapping) MarshalJSON() ([]byte, error) {
	type alias DateFieldMapping
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: DateDatatype, alias: alias(m)})
}
