// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/LowieHuyghe/next-to-firebase/internal/issue"
	"github.com/LowieHuyghe/next-to-firebase/pkg/cueutil"
	"github.com/LowieHuyghe/next-to-firebase/pkg/types"
)

const (
	// AppName is the application name.
	AppName = "next-to-firebase"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = AppName
	// ConfigFileExt is the preferred config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment variables, e.g. NEXT_TO_FIREBASE_OUT.
	EnvPrefix = "NEXT_TO_FIREBASE"
	// DotenvFileName is read from the project root.
	DotenvFileName = ".env"
)

// ConfigFileExts lists the recognized config file extensions in lookup order.
var ConfigFileExts = []string{"cue", "toml", "yaml", "yml"}

//go:embed config_schema.cue
var configSchema []byte

// loadWithOptions performs option-driven config loading without mutating
// package-level state.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, types.FilesystemPath, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	if err := opts.Validate(); err != nil {
		return nil, "", err
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("next", defaults.Next)
	v.SetDefault("out", defaults.Out)
	v.SetDefault("environments", defaults.Environments)
	v.SetDefault("next_build_dir", defaults.NextBuildDir)
	v.SetDefault("functions.region", defaults.Functions.Region)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.color_scheme", string(defaults.UI.ColorScheme))
	v.SetDefault("watch.debounce", defaults.Watch.Debounce.String())
	v.SetDefault("watch.ignore", defaults.Watch.Ignore)

	baseDir := string(opts.BaseDir)
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, "", fmt.Errorf("failed to get working directory: %w", err)
		}
		baseDir = wd
	}

	resolvedPath := ""
	if opts.ConfigFilePath != "" {
		// A --config file is used exclusively.
		path := string(opts.ConfigFilePath)
		if !fileExists(path) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithIssue(issue.ConfigLoadFailedId).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				WithSuggestion("Use 'next-to-firebase config show' to see the default configuration").
				Wrap(fmt.Errorf("config file not found: %s", path)).
				BuildError()
		}
		resolvedPath = path
	} else {
		resolvedPath = findConfigFile(baseDir)
	}

	if resolvedPath != "" {
		if err := loadFileIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithIssue(issue.ConfigLoadFailedId).
				WithSuggestion("Check the syntax of the config file").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("See 'next-to-firebase config --help' for configuration options").
				Wrap(err).
				BuildError()
		}
	}

	if err := loadDotenvIntoViper(v, filepath.Join(baseDir, DotenvFileName)); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("load .env file").
			WithResource(filepath.Join(baseDir, DotenvFileName)).
			WithIssue(issue.ConfigLoadFailedId).
			WithSuggestion("Use KEY=value lines, e.g. NEXT_TO_FIREBASE_OUT=dist").
			Wrap(err).
			BuildError()
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithIssue(issue.ConfigLoadFailedId).
			WithSuggestion("Check NEXT_TO_FIREBASE_* environment variables and the .env file").
			Wrap(err).
			BuildError()
	}

	return &cfg, types.FilesystemPath(resolvedPath), nil
}

// findConfigFile returns the first next-to-firebase.<ext> in dir, or "".
func findConfigFile(dir string) string {
	for _, ext := range ConfigFileExts {
		path := filepath.Join(dir, ConfigFileName+"."+ext)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// loadFileIntoViper decodes a CUE, TOML or YAML file, validates it against
// the #Config schema and merges it into Viper.
func loadFileIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return err
	}

	switch ext := strings.TrimPrefix(filepath.Ext(path), "."); ext {
	case "cue":
	case "toml":
		data, err = toJSON(data, toml.Unmarshal)
	case "yaml", "yml":
		data, err = toJSON(data, yaml.Unmarshal)
	default:
		return fmt.Errorf("unsupported config file extension %q (supported: %s)", ext, strings.Join(ConfigFileExts, ", "))
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	// JSON is valid CUE, so every format goes through the same schema.
	result, err := cueutil.ParseAndDecode[map[string]any](configSchema, data, "#Config",
		cueutil.WithFilename(path), cueutil.WithConcrete(false))
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(*result.Value); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

func toJSON(data []byte, unmarshal func([]byte, any) error) ([]byte, error) {
	var m map[string]any
	if err := unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = map[string]any{}
	}
	return json.Marshal(m)
}

// loadDotenvIntoViper applies NEXT_TO_FIREBASE_* entries of a .env file for
// every known key the process environment does not set. A missing file is
// not an error.
func loadDotenvIntoViper(v *viper.Viper, path string) error {
	if !fileExists(path) {
		return nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return err
	}
	for _, key := range v.AllKeys() {
		name := EnvVarName(key)
		value, ok := values[name]
		if !ok {
			continue
		}
		if _, set := os.LookupEnv(name); set {
			continue
		}
		v.Set(key, value)
	}
	return nil
}

// EnvVarName returns the environment variable of a config key:
// "functions.region" becomes NEXT_TO_FIREBASE_FUNCTIONS_REGION.
func EnvVarName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes a default next-to-firebase.cue into dir unless
// a config file already exists there. It returns the path of the config file.
func CreateDefaultConfig(dir types.FilesystemPath) (types.FilesystemPath, bool, error) {
	if existing := findConfigFile(string(dir)); existing != "" {
		return types.FilesystemPath(existing), false, nil
	}

	cfgPath := filepath.Join(string(dir), ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}
	return types.FilesystemPath(cfgPath), true, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// next-to-firebase configuration\n")
	sb.WriteString("// Paths are relative to the project root.\n\n")

	if cfg.Next != "" {
		fmt.Fprintf(&sb, "next: %q\n", cfg.Next)
	}
	if cfg.Out != "" {
		fmt.Fprintf(&sb, "out: %q\n", cfg.Out)
	}
	if len(cfg.Environments) > 0 {
		quoted := make([]string, len(cfg.Environments))
		for i, env := range cfg.Environments {
			quoted[i] = fmt.Sprintf("%q", env)
		}
		fmt.Fprintf(&sb, "environments: [%s]\n", strings.Join(quoted, ", "))
	}
	if cfg.NextBuildDir != "" {
		fmt.Fprintf(&sb, "next_build_dir: %q\n", cfg.NextBuildDir)
	}

	if cfg.Functions.Region != "" {
		sb.WriteString("\nfunctions: {\n")
		fmt.Fprintf(&sb, "\tregion: %q\n", cfg.Functions.Region)
		sb.WriteString("}\n")
	}

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	sb.WriteString("}\n")

	sb.WriteString("\nwatch: {\n")
	fmt.Fprintf(&sb, "\tdebounce: %q\n", cfg.Watch.Debounce.String())
	if len(cfg.Watch.Ignore) > 0 {
		quoted := make([]string, len(cfg.Watch.Ignore))
		for i, pattern := range cfg.Watch.Ignore {
			quoted[i] = fmt.Sprintf("%q", pattern)
		}
		fmt.Fprintf(&sb, "\tignore: [%s]\n", strings.Join(quoted, ", "))
	}
	sb.WriteString("}\n")

	return sb.String()
}
