package store

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config locates and selects the backing store.
type Config interface {
	BasePath() string
	Backend() string
}

// FileConfig is the resolved .tripbook configuration.
type FileConfig struct {
	Path         string `json:"path"`
	StoreBackend string `json:"backend"`
	Trip         string `json:"trip"`
	DayCapacity  int    `json:"dayCapacity"`
	HistoryLimit int    `json:"historyLimit"`
	LogLevel     string `json:"logLevel"`
}

var _ Config = (*FileConfig)(nil)

func (f *FileConfig) BasePath() string { return f.Path }

func (f *FileConfig) Backend() string { return f.StoreBackend }

// LoadConfig reads .tripbook.yaml from $TRIPBOOK_CONFIG_PATH, the working
// directory or $HOME, with TRIPBOOK_* environment overrides. A missing file
// is fine; defaults apply.
func LoadConfig() (*FileConfig, error) {
	v := viper.New()
	v.SetDefault("path", "~/.tripbook")
	v.SetDefault("backend", BackendDiskv)
	v.SetDefault("trip", "default")
	v.SetDefault("day_capacity", 4)
	v.SetDefault("history_limit", 50)
	v.SetDefault("log_level", "warn")

	v.SetConfigName(".tripbook") // .yaml is implicit
	v.SetEnvPrefix("TRIPBOOK")
	v.AutomaticEnv()

	if override := os.Getenv("TRIPBOOK_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	return &FileConfig{
		Path:         path,
		StoreBackend: strings.ToLower(v.GetString("backend")),
		Trip:         v.GetString("trip"),
		DayCapacity:  v.GetInt("day_capacity"),
		HistoryLimit: v.GetInt("history_limit"),
		LogLevel:     v.GetString("log_level"),
	}, nil
}
