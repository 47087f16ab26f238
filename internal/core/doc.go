// Package core provides the main seedpass operations.
//
// Core operations include:
//   - Generate: derive a service password, filling in remembered settings
//   - Remember/Forget: manage per-service length and scheme profiles
//   - Export/Import/Diff: move profiles between machines as JSON
//   - Init/Status/Compact: manage the profile store itself
//
// Generate works without a profile store. The store only ever holds
// service names, lengths and scheme names; master secrets are read from
// the environment or the terminal for a single call and cleared after.
package core
