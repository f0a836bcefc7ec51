// Package config loads and validates the YAML application configuration:
// the POI spreadsheet source, the routing engine endpoint, the data
// directory holding the network extract and schedule archives, the two
// scenario definitions, and the shared analysis constraints.
package config
