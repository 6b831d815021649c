// Package core provides the CSV re-mapping engine for AFIP/ARCA
// "Comprobantes" exports.
//
// This package contains all conversion logic independent of any UI or
// transport layer. It is used by the web server, the CLI and tests without
// modification.
//
// # Pipeline
//
// Each input file runs through four stages, strictly left to right:
//
//  1. Encoding resolution: [ResolveEncoding] picks one byte encoding for
//     the whole file by scoring an ordered candidate list against the
//     expected header vocabulary.
//  2. Header normalization: [NormalizeHeader] turns each decoded header
//     cell into an accent-free ASCII name; [NewHeaderIndex] keeps the
//     first position of every name.
//  3. Column mapping: [BuildBindings] resolves the 17 fixed output columns
//     to a frozen [Bindings] table, failing fast with a
//     [*MissingColumnError] before any output is written.
//  4. Row transformation: [Bindings.Transform] decodes, projects and
//     applies the value rules to one record; [Converter] streams the
//     records to a [Writer].
//
// # Sources
//
// Records are read from a [RecordSource]. [CSVSource] reads the
// semicolon dialect from raw bytes; [XLSXSource] reads the first sheet of
// an .xlsx export. Use [SourceFor] to pick one by file name.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - VAL004-VAL005: Content errors (missing column, unreadable amount)
//   - FILE001-FILE005: File errors (size, format, type, empty)
//   - CONV001-CONV003: Conversion errors (busy, cancelled, timeout)
//   - RATE001: Request rate limit
package core
