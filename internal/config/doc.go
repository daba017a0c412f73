// Package config loads the optional YAML settings for a scraper run.
//
// Every setting has a default matching the fixed behavior of the scraper, so a
// run needs no file at all. Keys missing from a file keep their defaults.
package config
