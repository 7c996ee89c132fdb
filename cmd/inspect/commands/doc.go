// Package commands defines the inspect CLI, a headless view of the showroom
// catalog and assets.
//
// Commands
//
//   - models              List catalog models and the palette
//   - nodes <model>       Load a model and list its nodes with mesh and paintable flags
//   - paint <model> <hex> Load, paint and report the applied material and diagnostics
//
// The root command loads SHOWROOM_* configuration and builds the logger,
// catalog and asset loader before any subcommand runs.
package commands
