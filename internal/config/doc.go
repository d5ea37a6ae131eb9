// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation.
// Every field has a default, so the dashboard also runs from environment alone
// (see LoadFromEnv). Credentials are read from KALSHI_KEY_ID and KALSHI_PRIVATE_KEY
// when the file leaves them empty. Defaults are set before the file is decoded,
// so an explicit zero in the file is kept.
package config
