// Package config loads service configuration from a YAML file, an optional
// .env file and the process environment.
//
// Viper reads the YAML file; godotenv loads .env files into the environment;
// every environment variable is then bound to the nested keys it can
// address, so ENGINE_MODEL overrides engine.model.
//
// # Usage
//
//	var cfg app.Config
//	err := config.LoadConfig("transcriptor", &cfg)
package config
