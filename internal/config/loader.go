package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config file names searched in the working directory.
const (
	ConfigFileName    = "datacharts.yaml"
	ConfigFileNameAlt = "datacharts.yml"
)

// EnvPrefix is the environment variable prefix, e.g. DATACHARTS_OUTPUT.
const EnvPrefix = "DATACHARTS_"

var configFileUsed string

// findConfigFile finds the config file to use.
// Priority: explicit path > datacharts.yaml > datacharts.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(ConfigFileName); err == nil {
		return ConfigFileName
	}
	if _, err := os.Stat(ConfigFileNameAlt); err == nil {
		return ConfigFileNameAlt
	}
	return ""
}

// Load loads configuration from defaults, the config file, DATACHARTS_
// environment variables, and explicitly set flags, in increasing
// precedence.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"server.host":               DefaultHost,
		"server.port":               DefaultPort,
		"limits.max_execution_time": DefaultMaxExecutionTime,
		"output":                    DefaultOutput,
		"log_level":                 DefaultLogLevel,
		"verbose":                   false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// DATACHARTS_SERVER_PORT -> server.port, DATACHARTS_OUTPUT -> output.
	// Underscores inside a section key stay as-is (max_execution_time), so
	// only known section prefixes are dotted.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		for _, section := range []string{"server", "limits"} {
			if strings.HasPrefix(key, section+"_") {
				return section + "." + strings.TrimPrefix(key, section+"_")
			}
		}
		return key
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			switch key {
			case "host":
				return "server.host", posflag.FlagVal(flags, f)
			case "port":
				return "server.port", posflag.FlagVal(flags, f)
			case "timeout":
				return "limits.max_execution_time", posflag.FlagVal(flags, f)
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.ApplyDefaults()
	if cfg.Verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ConfigFileUsed returns the path to the config file being used, if any.
func ConfigFileUsed() string {
	return configFileUsed
}
