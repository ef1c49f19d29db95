// Package storage writes track artifacts to the output directory.
//
// Every manifest row produces files named after its sanitized track name:
// a JSON descriptor (<name>.json) and, when the info table links one, a cover
// image (<name><ext>). Files are overwritten unconditionally on re-runs.
// The default output directory is ./tracks.
package storage
