// Package migrate backfills derived catalog columns in fixed-size windows.
//
// Each window commits independently, so an interrupted run leaves every
// completed window durable. Update predicates target only rows that have not
// been populated yet, which makes every migration safe to re-run: a second
// pass over unchanged data performs zero updates.
package migrate
