package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Ebzefr/WebSecura/logger"

	"github.com/spf13/viper"
)

type DefaultPaths struct {
	ConfigDir   string
	StoragePath string
	LogPathApp  string
	LogPathHTTP string
	ExportDir   string
	LogLevel    string
	APIBaseURL  string
}

type Configuration struct {
	API struct {
		BaseURL        string `mapstructure:"base_url"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	} `mapstructure:"api"`
	Storage struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"storage"`
	Server struct {
		Port    string `mapstructure:"port"`
		LogPath string `mapstructure:"log_path"`
	} `mapstructure:"server"`
	HTTP struct {
		LogPath string `mapstructure:"log_path"`
	} `mapstructure:"http"`
	Logging struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"logging"`
	UI struct {
		PageSize      int    `mapstructure:"page_size"`
		NoticeSeconds int    `mapstructure:"notice_seconds"`
		ProductName   string `mapstructure:"product_name"`
	} `mapstructure:"ui"`
	Export struct {
		Dir string `mapstructure:"dir"`
	} `mapstructure:"export"`
}

var AppConfig Configuration

// Timeout is the per-request deadline for backend calls.
func (c Configuration) Timeout() time.Duration {
	if c.API.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// NoticeDuration is how long transient notices stay up.
func (c Configuration) NoticeDuration() time.Duration {
	if c.UI.NoticeSeconds <= 0 {
		return 3 * time.Second
	}
	return time.Duration(c.UI.NoticeSeconds) * time.Second
}

func expandTilde(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// ExpandTilde is exported for the cmd package flag handling.
func ExpandTilde(path string) (string, error) {
	return expandTilde(path)
}

func GetDefaultConfigPaths() DefaultPaths {
	var paths DefaultPaths
	userConfigDirBase, err := os.UserConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not get user config dir: %v. Using current directory.\n", err)
		userConfigDirBase = "."
	}

	userConfigDir, err := expandTilde(userConfigDirBase)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in user config dir '%s': %v. Using potentially literal path.\n", userConfigDirBase, err)
		userConfigDir = userConfigDirBase
	}

	paths.ConfigDir = filepath.Join(userConfigDir, "websecura")
	logDir := filepath.Join(paths.ConfigDir, "logs")

	paths.StoragePath = filepath.Join(paths.ConfigDir, "localstorage.db")
	paths.LogPathApp = filepath.Join(logDir, "app.log")
	paths.LogPathHTTP = filepath.Join(logDir, "http.log")
	paths.ExportDir = "."
	paths.LogLevel = "INFO"
	paths.APIBaseURL = "http://localhost:8000"
	return paths
}

// SetDefaults registers every default on v. Split out of Init so tests can
// inspect the defaults without touching the filesystem.
func SetDefaults(v *viper.Viper) {
	defaults := GetDefaultConfigPaths()
	v.SetDefault("api.base_url", defaults.APIBaseURL)
	v.SetDefault("api.timeout_seconds", 60)
	v.SetDefault("storage.path", defaults.StoragePath)
	v.SetDefault("server.port", "8779")
	v.SetDefault("server.log_path", defaults.LogPathApp)
	v.SetDefault("http.log_path", defaults.LogPathHTTP)
	v.SetDefault("logging.level", defaults.LogLevel)
	v.SetDefault("ui.page_size", 10)
	v.SetDefault("ui.notice_seconds", 3)
	v.SetDefault("ui.product_name", "websecura")
	v.SetDefault("export.dir", defaults.ExportDir)
}

// Load reads configuration into a fresh Configuration without touching the
// loggers. cfgFile may be empty. A missing config file is not an error;
// the second return reports which source was used.
func Load(cfgFile string) (Configuration, string, error) {
	v := viper.New()
	SetDefaults(v)
	defaults := GetDefaultConfigPaths()

	if cfgFile != "" {
		expandedCfgFile, err := expandTilde(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in config file path '%s': %v. Trying original path.\n", cfgFile, err)
			expandedCfgFile = cfgFile
		}
		v.SetConfigFile(expandedCfgFile)
		v.SetConfigType("yaml")
	} else {
		v.AddConfigPath(defaults.ConfigDir)
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("WEBSECURA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	configUsedMsg := "Using default/environment configuration."
	if readErr := v.ReadInConfig(); readErr == nil {
		configUsedMsg = fmt.Sprintf("Using config file: %s", v.ConfigFileUsed())
	} else if _, ok := readErr.(viper.ConfigFileNotFoundError); ok {
		if cfgFile != "" {
			fmt.Fprintf(os.Stderr, "Warning: Config file specified by flag (%s) not found: %v\n", cfgFile, readErr)
		}
	} else {
		fmt.Fprintf(os.Stderr, "Error reading config file %s: %v\n", v.ConfigFileUsed(), readErr)
		configUsedMsg = fmt.Sprintf("Config file %s unreadable (%v); using defaults/environment.", v.ConfigFileUsed(), readErr)
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, configUsedMsg, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if cfg.UI.PageSize <= 0 {
		cfg.UI.PageSize = 10
	}
	return cfg, configUsedMsg, nil
}

func Init(cfgFile string, flagAppLogPath, flagHTTPLogPath, flagLogLevel string) error {
	cfg, configUsedMsg, err := Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: Error unmarshalling configuration: %v\n", err)
		return err
	}
	AppConfig = cfg

	if flagAppLogPath != "" {
		expandedPath, err := expandTilde(flagAppLogPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in --app-log path '%s': %v. Using original path.\n", flagAppLogPath, err)
			AppConfig.Server.LogPath = flagAppLogPath
		} else {
			AppConfig.Server.LogPath = expandedPath
		}
	}
	if flagHTTPLogPath != "" {
		expandedPath, err := expandTilde(flagHTTPLogPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in --http-log path '%s': %v. Using original path.\n", flagHTTPLogPath, err)
			AppConfig.HTTP.LogPath = flagHTTPLogPath
		} else {
			AppConfig.HTTP.LogPath = expandedPath
		}
	}
	if flagLogLevel != "" {
		AppConfig.Logging.Level = strings.ToUpper(flagLogLevel)
	}

	AppConfig.Storage.Path, err = expandTilde(AppConfig.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in storage.path '%s': %v.\n", AppConfig.Storage.Path, err)
	}
	AppConfig.Export.Dir, err = expandTilde(AppConfig.Export.Dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in export.dir '%s': %v.\n", AppConfig.Export.Dir, err)
	}

	if err := os.MkdirAll(GetDefaultConfigPaths().ConfigDir, 0750); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not create main config directory: %v\n", err)
	}

	if err := logger.InitGlobalLoggers(AppConfig.Server.LogPath, AppConfig.HTTP.LogPath, AppConfig.Logging.Level); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: Failed to initialize global loggers with final config: %v\n", err)
		return fmt.Errorf("failed to initialize global loggers with final config: %w", err)
	}

	logger.Info(configUsedMsg)
	logger.Info("Backend API base URL: %s (timeout %s)", AppConfig.API.BaseURL, AppConfig.Timeout())
	if !strings.HasPrefix(AppConfig.API.BaseURL, "https://") {
		logger.Warn("Backend API base URL is not HTTPS; credentials travel in clear text.")
	}
	logger.Debug("Final AppConfig Initialized: %+v", AppConfig)
	return nil
}
