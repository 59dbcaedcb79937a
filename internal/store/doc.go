// Package store keeps catalog snapshots in SQLite.
//
// A snapshot is reference data only: pagesets, system profiles and
// processors in catalog order, plus the catalog fingerprint. Generated
// plans are never persisted.
//
// # Ordering
//
// Every table carries a seq column holding the record's catalog position.
// All reads use ORDER BY seq ASC so a snapshot reloads in the order it was
// written; the first pageset per system stays the default target.
//
// # Identity
//
// Folded keys (see ir.FoldKey) back the UNIQUE constraints, so a snapshot
// can never hold two records that a catalog would reject as duplicates.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Records are stored as canonical JSON (ir.MarshalCanonical).
package store
