// Package export renders fact-types into the EXP text format and routes
// the rendered blocks into per-model files.
//
// # Format
//
// Every output file starts with a one-line marker, followed by one block per
// fact-type routed to it:
//
//	[EXPFILE]
//	; **********************************************************************
//	; FACT-TYPE: PERSON AGE
//	; **********************************************************************
//	; Generated on        : 2026-01-15 15:04:05.000000
//	; Owner               : Team Rules
//	; Tags                : #ALPHA, #BETA
//	"Jan is 42 years old"
//	"Piet is ###MISSING### years old"
//
// Header and metadata lines are comments (prefixed "; "); each data row
// becomes one quoted sentence. A blank line closes every block.
//
// # File Naming
//
// Blocks are grouped by the record's model: "My Model" is written to
// my_model.exp. Records without a model go to the default file,
// generated_by_the_casewalker.exp.
//
// # Runs
//
// Convert performs a whole run: it empties the output directory, sorts the
// records by title, formats each one and appends it to its file. File
// system failures never stop a run; they are collected in the Report.
package export
