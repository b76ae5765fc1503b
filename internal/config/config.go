// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

// Package config loads the two JSON documents the toolchain needs:
// config.json (paths + settings for the data API) and
// starter-config.json (the supervisor/auth process). The discovery
// order is adapted from untoldecay/BeadsLog's internal/config.Initialize,
// which walks up from the working directory before falling back to XDG
// and home-directory locations; here the search is for a JSON file
// rather than BeadsLog's config.yaml, and the defaults are this
// toolchain's own rather than bd's CLI flags.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// PathsConfig names the four base/export roots.
type PathsConfig struct {
	Base   DirPair `json:"base"`
	Custom DirPair `json:"custom"`
}

// DirPair is one {dbc, icons} directory pair.
type DirPair struct {
	DBC   string `json:"dbc"`
	Icons string `json:"icons"`
}

// SettingsConfig is the mutable operator-facing subset of config.json.
type SettingsConfig struct {
	ActiveDBCSource       string `json:"activeDBCSource"`
	ActiveIconSource      string `json:"activeIconSource"`
	AllowBaseModification bool   `json:"allowBaseModification"`
	Initialized           bool   `json:"initialized"`
	MirrorDSN             string `json:"mirrorDSN"`
}

// Config is the full config.json document.
type Config struct {
	Paths    PathsConfig    `json:"paths"`
	Settings SettingsConfig `json:"settings"`
}

// DBConfig names a MySQL connection.
type DBConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
}

// SupervisorPaths names the supervised binaries and operator paths.
type SupervisorPaths struct {
	AcoreRoot       string            `json:"acoreRoot"`
	AuthBin         string            `json:"authBin"`
	WorldBin        string            `json:"worldBin"`
	ArmoryBin       string            `json:"armoryBin"`
	LogsDir         string            `json:"logsDir"`
	ProcessPatterns map[string]string `json:"processPatterns,omitempty"`
}

// SecurityConfig gates supervisor-level operations.
type SecurityConfig struct {
	AdminMinLevel int `json:"adminMinLevel"`
}

// StarterConfig is the full starter-config.json document.
type StarterConfig struct {
	DB       DBConfig        `json:"db"`
	Paths    SupervisorPaths `json:"paths"`
	Security SecurityConfig  `json:"security"`
}

func defaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			Base:   DirPair{DBC: "dbc", Icons: "Icons"},
			Custom: DirPair{DBC: "custom-dbc", Icons: "custom-icon"},
		},
		Settings: SettingsConfig{
			ActiveDBCSource:  "base",
			ActiveIconSource: "base",
		},
	}
}

// Load reads config.json. If explicitPath is empty, the search order is:
// ./config.json, then $XDG_CONFIG_HOME/sdbeditor/config.json, then
// ~/.sdbeditor/config.json. A missing file is not an error: built-in
// defaults apply.
func Load(explicitPath string) (*Config, error) {
	cfg := defaultConfig()
	v, found, err := readLayered(explicitPath, "config", candidatePaths("config.json"))
	if err != nil {
		return nil, err
	}
	if !found {
		return cfg, nil
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadStarter reads starter-config.json with the same discovery order.
func LoadStarter(explicitPath string) (*StarterConfig, error) {
	cfg := &StarterConfig{}
	v, found, err := readLayered(explicitPath, "starter", candidatePaths("starter-config.json"))
	if err != nil {
		return nil, err
	}
	if !found {
		return cfg, nil
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func candidatePaths(filename string) []string {
	var out []string

	if cwd, err := os.Getwd(); err == nil {
		out = append(out, filepath.Join(cwd, filename))
	}
	if xdg, err := os.UserConfigDir(); err == nil {
		out = append(out, filepath.Join(xdg, "sdbeditor", filename))
	}
	if home, err := os.UserHomeDir(); err == nil {
		out = append(out, filepath.Join(home, ".sdbeditor", filename))
	}
	return out
}

// readLayered wires one viper instance per document so config.json and
// starter-config.json don't share environment-variable namespaces
// (SDBE_CONFIG_* vs SDBE_STARTER_*).
func readLayered(explicitPath, envPrefix string, candidates []string) (*viper.Viper, bool, error) {
	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix("SDBE_" + strings.ToUpper(envPrefix))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	path := explicitPath
	if path == "" {
		for _, c := range candidates {
			if _, err := os.Stat(c); err == nil {
				path = c
				break
			}
		}
	}
	if path == "" {
		return v, false, nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, false, err
	}
	return v, true, nil
}
