// Package store archives completed simulation runs in a local SQLite file.
//
// Each run is stored with the fingerprint of the configuration it was
// built from, so repeated runs of the same configuration can be listed
// together and compared.
//
// # Ordering
//
// Runs carry a logical sequence number assigned at insert. Every listing
// is ordered by seq ASC, id ASC COLLATE BINARY and never by timestamps,
// which come from the caller's clock.
//
// # Archive file
//
// Connections open in WAL mode with synchronous=NORMAL and a five second
// busy timeout, so a listing can read while a run is being recorded. The
// archive layout is versioned through PRAGMA user_version; Open refuses
// an archive stamped by a newer release.
package store
