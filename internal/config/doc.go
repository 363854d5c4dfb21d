// Package config loads the settings of the utfstring command.
//
// Settings come from four layers, each overriding the one before:
//
//  1. built-in defaults (Default)
//  2. a TOML file, for example:
//
//	[logging]
//	level = "debug"
//
//	[input]
//	encoding = "utf-16le"
//	normalize = "nfc"
//
//	[report]
//	format = "json"
//	hexGroup = 16
//
//  3. a dotenv file of UTFSTRING_* variables
//  4. UTFSTRING_* variables in the process environment
//
// Command line flags are applied by the caller after Load. Validate reports
// every unusable value at once.
package config
