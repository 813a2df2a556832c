// Package config loads the catalog's runtime configuration.
//
// Configuration is YAML read through viper. Every key has a default, and
// any key can be overridden from the environment with the TOOLCATALOG_
// prefix and dots replaced by underscores:
//
//	TOOLCATALOG_REMOTE_BASEURL=https://tools.example.com
//	TOOLCATALOG_STORE_DRIVER=bolt
//
// Raw values are decoded with mapstructure tags, then normalized and
// validated into [Config]. All problems are reported together.
package config
