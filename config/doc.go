// Package config loads library configuration from YAML files and the
// environment. It combines viper for file/env binding with godotenv for
// optional .env files, and resolves files from a small set of standard
// locations so embedding applications need no boilerplate.
package config
