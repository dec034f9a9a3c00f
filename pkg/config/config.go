package config

import (
	"encoding/json"
	"fmt"
	"os"

	"dario.cat/mergo"
	"github.com/Shopify/ejson"
	"github.com/caarlos0/env/v6"
	"github.com/ghodss/yaml"
)

// ConfigEnvVar, when set, supplies the whole YAML configuration inline and
// takes precedence over the config file.
const ConfigEnvVar = "LEDGERFEED_CONFIG"

const ejsonKeyEnvVar = "LEDGERFEED_EJSON_SECRET_KEY"

// Load reads the YAML configuration and the secrets and returns them as one
// immutable pair. Nothing here is stored in package state; callers pass the
// result down explicitly.
func Load(configFile, secretsFile string) (*Config, *Secrets, error) {
	cfg, err := readConfig(ConfigEnvVar, configFile)
	if err != nil {
		return nil, nil, err
	}

	secrets, err := readSecrets(secretsFile)
	if err != nil {
		return nil, nil, err
	}

	return cfg, secrets, nil
}

func readConfig(envName, filename string) (*Config, error) {
	var raw []byte
	var err error

	rawEnv := os.Getenv(envName)
	if rawEnv != "" {
		raw = []byte(rawEnv)
	} else {
		raw, err = os.ReadFile(filename)
		if err != nil {
			return nil, err
		}
	}

	cfg := Config{}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Inbox == "" {
		c.Inbox = "statements"
	}
	if c.ArchiveDir == "" {
		c.ArchiveDir = "statements/archive"
	}
	if c.Database == "" {
		c.Database = "ledgerfeed"
	}
	if c.UpdateFrequency == "" {
		c.UpdateFrequency = "@hourly"
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}
	if c.ImportTimeoutSeconds <= 0 {
		c.ImportTimeoutSeconds = 60
	}
}

func readSecrets(filename string) (*Secrets, error) {
	ejsonSecrets, ejsonErr := readEjsonSecrets(filename)

	envSecrets, envErr := readEnvSecrets()

	switch {
	case ejsonErr == nil && envErr == nil:
		if err := mergo.Merge(envSecrets, *ejsonSecrets); err != nil {
			return nil, fmt.Errorf("failed to merge secrets: %w", err)
		}
		return envSecrets, nil
	case ejsonErr != nil && envErr == nil:
		return envSecrets, nil
	case ejsonErr == nil:
		return ejsonSecrets, nil
	default:
		return nil, fmt.Errorf("failed to parse secrets. Ejson error: %v. Env error: %v", ejsonErr, envErr)
	}
}

func readEjsonSecrets(filename string) (*Secrets, error) {
	ejsonSecrets := Secrets{}
	ejsonKeyFile := os.Getenv(ejsonKeyEnvVar)
	ejsonKey := []byte{}
	var err error

	if ejsonKeyFile != "" {
		ejsonKey, err = os.ReadFile(ejsonKeyFile)
		if err != nil {
			return nil, err
		}
	}

	raw, err := ejson.DecryptFile(filename, "/opt/ejson/keys", string(ejsonKey))
	if err != nil {
		return nil, err
	}

	err = json.Unmarshal(raw, &ejsonSecrets)
	return &ejsonSecrets, err
}

func readEnvSecrets() (*Secrets, error) {
	envSecrets := Secrets{}
	err := env.Parse(&envSecrets)
	return &envSecrets, err
}
