// Package query filters a tile grid down to the cells that satisfy a
// textual condition.
//
// An expression is a comma-separated list of clauses, all of which must hold:
//
//	AREA_WH 1 1 3 3, !INDEX Back 0, PLACEABLE
//
// The first word of a clause is a case-insensitive keyword looked up in a
// Registry; the remaining words are its arguments. Quoting follows POSIX shell
// rules, so a nested expression is written as one quoted argument:
//
//	NOT "AREA_XY 0 0 4 4, PASSABLE"
//	SIZE 2 2 "PROPERTY Back Type Dirt" "!OBJECT"
//
// Parsing is all-or-nothing. Through an Engine, an expression that fails to
// parse is logged and matches no cells.
//
// Predicates declare an evaluation rank, used to run cheap and selective
// checks first, and optionally a candidate rank. When a predicate can list
// its accepted cells directly, the best such list replaces a scan of the
// whole grid.
package query
