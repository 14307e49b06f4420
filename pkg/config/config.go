package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/utkarsh5026/srcobjects/pkg/common/fileops"
	"github.com/utkarsh5026/srcobjects/pkg/repository/scpath"
)

const (
	// EnvPrefix is prepended to upper-cased keys, with dots turned into
	// underscores: core.compression is read from SRCO_CORE_COMPRESSION.
	EnvPrefix = "SRCO"

	// FormatVersion is the only repository format this build understands.
	FormatVersion = 0

	configType = "toml"
)

// Known keys.
const (
	KeyFormatVersion = "core.repositoryformatversion"
	KeyFileMode      = "core.filemode"
	KeyCompression   = "core.compression"
	KeyVerify        = "objects.verify"
	KeyParallelism   = "build.parallelism"
	KeyIgnoreFile    = "build.ignorefile"
)

var defaults = map[string]any{
	KeyFormatVersion: FormatVersion,
	KeyFileMode:      true,
	KeyCompression:   -1,
	KeyVerify:        true,
	KeyParallelism:   4,
	KeyIgnoreFile:    scpath.IgnoreFile,
}

// CoreConfig is the [core] section.
type CoreConfig struct {
	RepositoryFormatVersion int  `mapstructure:"repositoryformatversion" toml:"repositoryformatversion"`
	FileMode                bool `mapstructure:"filemode" toml:"filemode"`
	Compression             int  `mapstructure:"compression" toml:"compression"`
}

// ObjectsConfig is the [objects] section.
type ObjectsConfig struct {
	Verify bool `mapstructure:"verify" toml:"verify"`
}

// BuildConfig is the [build] section.
type BuildConfig struct {
	Parallelism int    `mapstructure:"parallelism" toml:"parallelism"`
	IgnoreFile  string `mapstructure:"ignorefile" toml:"ignorefile"`
}

// Config is the effective repository configuration.
type Config struct {
	Core    CoreConfig    `mapstructure:"core" toml:"core"`
	Objects ObjectsConfig `mapstructure:"objects" toml:"objects"`
	Build   BuildConfig   `mapstructure:"build" toml:"build"`

	origins map[string]ConfigLevel
}

// LoadOptions controls where Load looks for values.
type LoadOptions struct {
	// Fs is the filesystem the config file is read from. Defaults to the OS.
	Fs afero.Fs

	// Path is the config file. An empty path or a missing file leaves the
	// builtin values in place.
	Path string

	// Overrides take precedence over every other source.
	Overrides map[string]any
}

// Default returns the builtin configuration, ignoring the environment.
func Default() *Config {
	return &Config{
		Core: CoreConfig{
			RepositoryFormatVersion: FormatVersion,
			FileMode:                true,
			Compression:             -1,
		},
		Objects: ObjectsConfig{Verify: true},
		Build: BuildConfig{
			Parallelism: 4,
			IgnoreFile:  scpath.IgnoreFile,
		},
	}
}

// Load builds the effective configuration from the builtin defaults, the
// repository file, SRCO_* environment variables and opts.Overrides, in
// increasing order of precedence. The result is validated.
func Load(opts LoadOptions) (*Config, error) {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}

	for key := range opts.Overrides {
		if _, ok := defaults[key]; !ok {
			return nil, newError(CodeUnknownKey, "load", "unknown key "+key, nil)
		}
	}

	v := newViper(opts.Fs)

	if opts.Path != "" {
		ok, err := fileops.Exists(opts.Fs, opts.Path)
		if err != nil {
			return nil, newError(CodeLoadFailed, "load", opts.Path, err)
		}
		if ok {
			v.SetConfigFile(opts.Path)
			if err := v.ReadInConfig(); err != nil {
				return nil, newError(CodeLoadFailed, "load", opts.Path, err)
			}
		}
	}

	for key, value := range opts.Overrides {
		v.Set(key, value)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, newError(CodeLoadFailed, "decode", "", err)
	}

	cfg.origins = make(map[string]ConfigLevel, len(defaults))
	for key := range defaults {
		cfg.origins[key] = originOf(v, key, opts.Overrides)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newViper(fs afero.Fs) *viper.Viper {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigType(configType)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	return v
}

func originOf(v *viper.Viper, key string, overrides map[string]any) ConfigLevel {
	if _, ok := overrides[key]; ok {
		return CommandLineLevel
	}
	if _, ok := os.LookupEnv(EnvName(key)); ok {
		return EnvironmentLevel
	}
	if v.InConfig(key) {
		return RepositoryLevel
	}
	return BuiltinLevel
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Keys returns every known key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate rejects values the object store or tree builder cannot honor.
// All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Core.RepositoryFormatVersion != FormatVersion {
		errs = append(errs, invalidValue(KeyFormatVersion, c.Core.RepositoryFormatVersion,
			fmt.Sprintf("unsupported repository format version %d", c.Core.RepositoryFormatVersion)))
	}
	if c.Core.Compression < -1 || c.Core.Compression > 9 {
		errs = append(errs, invalidValue(KeyCompression, c.Core.Compression,
			"compression level must be between -1 and 9"))
	}
	if c.Build.Parallelism < 1 {
		errs = append(errs, invalidValue(KeyParallelism, c.Build.Parallelism,
			"parallelism must be at least 1"))
	}

	return errors.Join(errs...)
}

// Get returns the effective value of key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case KeyFormatVersion:
		return fmt.Sprint(c.Core.RepositoryFormatVersion), nil
	case KeyFileMode:
		return fmt.Sprint(c.Core.FileMode), nil
	case KeyCompression:
		return fmt.Sprint(c.Core.Compression), nil
	case KeyVerify:
		return fmt.Sprint(c.Objects.Verify), nil
	case KeyParallelism:
		return fmt.Sprint(c.Build.Parallelism), nil
	case KeyIgnoreFile:
		return c.Build.IgnoreFile, nil
	default:
		return "", newError(CodeUnknownKey, "get", "unknown key "+key, nil)
	}
}

// Origin reports which source supplied the effective value of key.
func (c *Config) Origin(key string) ConfigLevel {
	if level, ok := c.origins[key]; ok {
		return level
	}
	return BuiltinLevel
}

// Save writes the file-backed part of c to path as TOML.
func (c *Config) Save(fs afero.Fs, path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return newError(CodeSaveFailed, "encode", path, err)
	}

	if err := fileops.EnsureParentDir(fs, path); err != nil {
		return newError(CodeSaveFailed, "save", path, err)
	}
	if err := fileops.AtomicWrite(fs, path, buf.Bytes(), 0o644); err != nil {
		return newError(CodeSaveFailed, "save", path, err)
	}
	return nil
}
