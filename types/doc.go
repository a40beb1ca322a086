// Package types provides strongly typed building blocks for document
// field mappings: string field mappings with their sub-field
// representations, date formats with format-aware (de)serialization and
// the index option enumerations used by both.
//
// The package focuses on:
//   - Declaring field mappings as plain structs that serialize to the
//     JSON the store's mapping API expects
//   - Date values that carry their wire format, so the same instant can
//     be rendered as basic_date_time or epoch_millis without ambiguity
//
// Mappings are data only - they are typically embedded in an index
// creation body and sent through the client like any other request.
package types
