// Package history persists the outcome of detection passes in a local SQLite
// database so earlier decisions for a disc can be listed and inspected.
//
// Writes are serialised across processes with an advisory file lock next to
// the database. The schema is versioned; a database written by a different
// version is rejected with ErrSchemaMismatch rather than migrated.
package history
