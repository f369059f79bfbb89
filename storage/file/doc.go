// Package file implements storage.CheckpointRepository on the local filesystem.
//
// One file per corpus version, named processed_<key>_books.json, containing a
// JSON array of canonical book IDs, e.g. ["GEN","EXO"].
package file
