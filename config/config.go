package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all tunables. Values come from defaults, then RELAY_*
// environment variables, then an optional yaml file; command line flags
// override on top of that in main.
type Config struct {
	APIListenAddr string `mapstructure:"api_listen_addr"`
	WSListenAddr  string `mapstructure:"ws_listen_addr"`
	LogLevel      string `mapstructure:"log_level"`
	StaticDir     string `mapstructure:"static_dir"`
	RoomIDLength  int    `mapstructure:"room_id_length"`
	ReadLimit     int64  `mapstructure:"read_limit"`
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("api_listen_addr", ":8080")
	v.SetDefault("ws_listen_addr", ":8888")
	v.SetDefault("log_level", "debug")
	v.SetDefault("static_dir", "./public")
	v.SetDefault("room_id_length", 6)
	v.SetDefault("read_limit", 9000)

	v.SetEnvPrefix("RELAY")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
