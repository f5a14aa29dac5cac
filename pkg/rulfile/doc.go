// Package rulfile implements the .RUL text codec: serializing rule
// collections to the pipe-delimited one-rule-per-line format and
// parsing that format (plus the older block format) back into rules.
//
// The canonical on-disk shape is one rule per line, KEY=VALUE fields
// joined by '|', keys ordered alphabetically for determinism:
//
//	ENABLED=TRUE|GAP=10mil|NAME=Clearance|RULEKIND=Clearance|...
//
// Parsing is lenient: lines that cannot be recognized are skipped with
// a logged warning and the remainder of the file is still processed.
package rulfile
