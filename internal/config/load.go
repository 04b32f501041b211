package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/droverhq/drover/internal/constants"
	"github.com/droverhq/drover/internal/errors"
)

// newViperInstance creates a Viper instance with the DROVER_ env prefix,
// key replacer, and defaults applied.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("DROVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults configures the built-in defaults on the Viper instance.
// Keys must match the yaml tag names exactly.
func setDefaults(v *viper.Viper) {
	v.SetDefault("git.base_branch", constants.DefaultBaseBranch)
	v.SetDefault("git.protected_branches", constants.DefaultProtectedBranches)
	v.SetDefault("git.sign_commits", true)
	v.SetDefault("git.remote", constants.DefaultRemote)
	v.SetDefault("git.merge_method", "squash")
	v.SetDefault("git.delete_branch_on_merge", true)

	v.SetDefault("skills.root", constants.DefaultSkillsRoot)

	v.SetDefault("scan.secrets", true)
	v.SetDefault("scan.injection", true)
	v.SetDefault("scan.urls", true)

	v.SetDefault("stats.history_file", constants.StatsHistoryFileName)
}

// isConfigNotFoundError reports whether the error is a viper file-not-found.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var notFound viper.ConfigFileNotFoundError
	return stderrors.As(err, &notFound)
}

// Load reads configuration from all sources with proper precedence.
// Missing config files are not errors; many repos run on defaults alone.
func Load() (*Config, error) {
	v := newViperInstance()

	if err := loadGlobalConfig(v); err != nil {
		return nil, err
	}
	if err := loadProjectConfig(v); err != nil {
		return nil, err
	}

	return unmarshalAndValidate(v)
}

// LoadFromPaths loads configuration from explicit file paths, for tests.
// Either path can be empty to skip that layer.
func LoadFromPaths(projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if globalConfigPath != "" {
		v.SetConfigFile(globalConfigPath)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read global config: %s", globalConfigPath)
		}
	}
	if projectConfigPath != "" {
		v.SetConfigFile(projectConfigPath)
		if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read project config: %s", projectConfigPath)
		}
	}

	return unmarshalAndValidate(v)
}

// loadGlobalConfig merges ~/.drover/config.yaml when it exists.
func loadGlobalConfig(v *viper.Viper) error {
	dir, err := GlobalConfigDir()
	if err != nil {
		return nil //nolint:nilerr // no home directory means no global config
	}
	path := filepath.Join(dir, constants.ConfigFileName)
	if !fileExists(path) {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read global config file")
	}
	return nil
}

// loadProjectConfig merges .drover/config.yaml when it exists.
func loadProjectConfig(v *viper.Viper) error {
	path := ProjectConfigPath()
	if !fileExists(path) {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read project config file")
	}
	return nil
}

// unmarshalAndValidate decodes the merged Viper state into a Config.
func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// viperDecoderOption configures mapstructure decoding for Viper unmarshal.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	)
}

// fileExists reports whether the file at path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
