// Package cmd implements the fbxtree subcommands. Each command is a kong
// command struct with a Run(context.Context) error method; shared state such
// as the parsed [kong.Context] and the scene search path travels in the
// context.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"

	// CatalogIdentifier is the kong variable identifier containing the
	// default path of the scene catalog database.
	CatalogIdentifier = "catalog"
)
