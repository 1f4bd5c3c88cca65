// Package sqlite provides a SQLite-backed implementation of the
// VectorStore driven port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. Vectors are
// stored as little-endian float32 BLOBs and similarity search runs as an
// exhaustive cosine scan in Go, which is more than fast enough for
// personal collections of tens of thousands of records.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in
// the migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.memoria/data/collection.db
//
// # Thread Safety
//
// All operations within one process are thread-safe; SQLite in WAL mode
// provides read/write isolation. The collection assumes a single writing
// process.
package sqlite
