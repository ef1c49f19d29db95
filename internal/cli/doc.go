// Package cli implements the command-line interface for track-assets.
//
// The root command (also available as "fetch") reads the track manifest named
// in config.properties, runs every row through the pipeline and reports one
// status line per track followed by a total. The gallery, rename and
// sort-classes subcommands wrap the asset utilities. Reports are written as
// colored text, JSON or YAML.
package cli
