// Package cli contains the command line interface for fbxtree.
//
// # Usage
//
//	fbxtree [flags] <command> [args]
//
// Scenes are named by path, by "-" for stdin, or by a bare name that is
// looked up in the search path: each --search-path directory, then each
// directory in $FBXTREE_PATH. Both "name" and "name.fbx" are tried.
//
// # Commands
//
//   - dump [tree|json|yaml] SCENE: print the whole node tree
//   - find SCENE PATH [--children NAME]: print the node at a path
//   - select SCENE EXPR: list nodes matching a filter expression
//   - catalog add|find|list: index scenes in a SQLite database
//   - browse SCENE: explore a scene interactively
//   - init [--force]: write the current flags to the configuration file
//   - version: print the version
//
// # Configuration
//
// Flags may be set in config.yaml or config.json in the configuration
// directory. YAML keys are flag names; nested mappings join with a hyphen:
//
//	log:
//	  level: debug
//	search-path:
//	  - /srv/assets
//
// Command-line flags override config file values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o fbxtree .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: the pprof
//     directory under the cache directory)
package cli
