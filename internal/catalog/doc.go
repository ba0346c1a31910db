// Package catalog persists harvested content records and their
// geo-restriction check history in SQLite.
//
// The Store owns both tables exclusively: callers merge observations through
// Upsert, append audit rows through RecordCheck, and read current state
// through the query helpers. Rows in content are never deleted; check_history
// is append-only. Schema changes are additive and guarded by column
// introspection, so opening an old database upgrades it in place without
// touching existing data.
package catalog
