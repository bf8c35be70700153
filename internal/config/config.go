package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	envPrefix = "EDAREPORT"
	dirName   = ".edareport"
)

// Global configuration structure.
type Global struct {
	DataPath  string `mapstructure:"data_path" yaml:"data_path"`
	ImagePath string `mapstructure:"image_path" yaml:"image_path"`
	// Delimiter overrides delimiter detection for text sources.
	Delimiter   string `mapstructure:"delimiter" yaml:"delimiter"`
	Sheet       string `mapstructure:"sheet" yaml:"sheet"`
	PreviewRows int    `mapstructure:"preview_rows" yaml:"preview_rows"`

	// Chart size in points
	ChartWidth  float64 `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight float64 `mapstructure:"chart_height" yaml:"chart_height"`

	ListenAddr string `mapstructure:"listen_addr" yaml:"listen_addr"`
	OutputDir  string `mapstructure:"output_dir" yaml:"output_dir"`
}

// Keys lists the settable configuration keys.
var Keys = []string{
	"data_path", "image_path", "delimiter", "sheet", "preview_rows",
	"chart_width", "chart_height", "listen_addr", "output_dir",
}

// DefaultPath returns ~/.edareport/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, dirName, "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.edareport/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults; command flags are applied by
// the caller on top. A .env file in the working directory is read first.
func Load(cfgFile string) (*Global, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("data_path", filepath.Join("data", "ifood_df_eda.csv"))
	v.SetDefault("image_path", filepath.Join("data", "ifood.png"))
	v.SetDefault("delimiter", "")
	v.SetDefault("sheet", "")
	v.SetDefault("preview_rows", 5)
	v.SetDefault("chart_width", 720)
	v.SetDefault("chart_height", 432)
	v.SetDefault("listen_addr", ":8501")
	v.SetDefault("output_dir", ".")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		path, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(path))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; defaults and env still apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// DelimiterRune returns the configured delimiter, or 0 for auto-detection.
func (c *Global) DelimiterRune() rune {
	switch c.Delimiter {
	case "":
		return 0
	case `\t`, "tab":
		return '\t'
	default:
		return []rune(c.Delimiter)[0]
	}
}

// Set assigns a configuration key from its string form.
func (c *Global) Set(key, val string) error {
	switch key {
	case "data_path":
		c.DataPath = val
	case "image_path":
		c.ImagePath = val
	case "delimiter":
		if len([]rune(val)) > 1 && val != `\t` && val != "tab" {
			return fmt.Errorf("invalid delimiter: %q (use a single character)", val)
		}
		c.Delimiter = val
	case "sheet":
		c.Sheet = val
	case "preview_rows":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for preview_rows: %v", val)
		}
		c.PreviewRows = i
	case "chart_width", "chart_height":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("invalid size for %s: %v", key, val)
		}
		if key == "chart_width" {
			c.ChartWidth = f
		} else {
			c.ChartHeight = f
		}
	case "listen_addr":
		c.ListenAddr = val
	case "output_dir":
		c.OutputDir = val
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}
