package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

const (
	EnvPrefix     = "THINGS"
	EnvConfigPath = "THINGS_CONFIG"
	// RelPath is the config file location below the XDG config home.
	RelPath = "things-cli/config.yaml"
)

var ErrConfigNotFound = errors.New("config file not found")

// Config holds the CLI settings after defaults, file and environment
// have been merged.
type Config struct {
	Token       string
	Locale      string
	AppName     string
	OpenCommand string
	Bridge      BridgeConfig
	Logger      LoggerConfig

	// File is the config file that was read, empty when none was found.
	File string
}

type BridgeConfig struct {
	Interpreter string
	Timeout     time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// Load reads config from path, $THINGS_CONFIG, or the XDG config dir, in
// that order. A missing file is only an error when it was named
// explicitly.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	explicit := strings.TrimSpace(path)
	if explicit == "" {
		explicit = strings.TrimSpace(os.Getenv(EnvConfigPath))
	}
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, explicit)
		}
		v.SetConfigFile(explicit)
	} else if found, err := xdg.SearchConfigFile(RelPath); err == nil {
		v.SetConfigFile(found)
	}

	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	cfg := &Config{
		Token:       strings.TrimSpace(v.GetString("token")),
		Locale:      strings.TrimSpace(v.GetString("locale")),
		AppName:     strings.TrimSpace(v.GetString("app_name")),
		OpenCommand: strings.TrimSpace(v.GetString("open_command")),
		File:        v.ConfigFileUsed(),
	}
	cfg.Bridge.Interpreter = strings.TrimSpace(v.GetString("bridge.interpreter"))
	cfg.Bridge.Timeout = v.GetDuration("bridge.timeout")
	if cfg.Bridge.Timeout <= 0 {
		cfg.Bridge.Timeout = 30 * time.Second
	}
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("token", "")
	v.SetDefault("locale", "auto")
	v.SetDefault("app_name", "Things3")
	v.SetDefault("open_command", "")
	v.SetDefault("bridge.interpreter", "osascript")
	v.SetDefault("bridge.timeout", "30s")
	v.SetDefault("logger.level", "warn")
	v.SetDefault("logger.encoding", "console")
}

// DefaultPath is where a new config file would live.
func DefaultPath() string {
	return xdg.ConfigHome + string(os.PathSeparator) + RelPath
}

// View is the printable form of cfg with the token masked.
func (c *Config) View() map[string]any {
	file := c.File
	if file == "" {
		file = "(none, defaults in use; create " + DefaultPath() + ")"
	}
	return map[string]any{
		"file":         file,
		"token":        MaskToken(c.Token),
		"locale":       c.Locale,
		"app_name":     c.AppName,
		"open_command": c.OpenCommand,
		"bridge": map[string]any{
			"interpreter": c.Bridge.Interpreter,
			"timeout":     c.Bridge.Timeout.String(),
		},
		"logger": map[string]any{
			"level":    c.Logger.Level,
			"encoding": c.Logger.Encoding,
		},
	}
}

// MaskToken keeps the last four characters of long tokens.
func MaskToken(token string) string {
	switch {
	case token == "":
		return "(not set)"
	case len(token) <= 4:
		return "****"
	default:
		return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
	}
}
