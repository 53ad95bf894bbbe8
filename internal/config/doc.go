// Package config handles loading and parsing the schemaview configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/schemaview/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// Command-line flags are applied on top of the loaded Config by the caller.
//
// # TOML Format
//
//	schema_path = "~/schemas/work.toml"   # .toml, .yaml, .json or a SQLite file
//	nats_url = "nats://127.0.0.1:4222"    # optional change/selection bus
//	nats_subject = "schemaview.>"
//	log_path = "~/.local/state/schemaview/schemaview.log"
//	poll_seconds = 0                      # 0 disables polling
//	initial_table = "Tasks"               # id or name
//	initial_view = "All tasks"            # id or name
//
// All fields are optional in the file, but a schema path must come from the
// file or the --schema flag before the viewer starts (see Validate). Tilde
// expansion is performed for schema_path and log_path.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors and negative poll_seconds. A missing
// config file is not an error.
package config
