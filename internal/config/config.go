package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/namsral/flag"

	"github.com/rocketscienceinc/minesweeper-backend/internal/apperror"
)

const (
	DefaultPath = "./config.yml"
	envPrefix   = "MINESWEEPER"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"4444"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Debug      bool   `yaml:"debug" env:"DEBUG" env-default:"false"`
	Board      Board  `yaml:"board"`
	Redis      Redis  `yaml:"redis"`
}

type Board struct {
	Size int    `yaml:"size" env:"BOARD_SIZE" env-default:"10"`
	File string `yaml:"file" env:"BOARD_FILE" env-default:""`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Overrides - values given on the command line. Nil fields were not given.
type Overrides struct {
	ConfigPath string
	Port       *string
	Size       *int
	File       *string
	Debug      *bool
}

// ParseFlags - parses args (without the program name). Every flag can also be set
// through a MINESWEEPER_ prefixed environment variable.
func ParseFlags(args []string) (*Overrides, error) {
	flagSet := flag.NewFlagSetWithEnvPrefix("minesweeper", envPrefix, flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	configPath := flagSet.String("config-path", DefaultPath, "path to the yaml config file")
	port := flagSet.Int("port", 0, "TCP port for the line protocol")
	size := flagSet.Int("size", 0, "side length of a random board")
	file := flagSet.String("file", "", "board file to load instead of a random board")
	debug := flagSet.Bool("debug", false, "keep players connected after a detonation and enable spy")

	if err := flagSet.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	overrides := &Overrides{ConfigPath: *configPath}

	var err error
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			if *port < 0 || *port > 65535 {
				err = fmt.Errorf("%w: %d", apperror.ErrInvalidPort, *port)
				return
			}
			value := strconv.Itoa(*port)
			overrides.Port = &value
		case "size":
			overrides.Size = size
		case "file":
			overrides.File = file
		case "debug":
			overrides.Debug = debug
		}
	})
	if err != nil {
		return nil, err
	}

	if overrides.Size != nil && overrides.File != nil {
		return nil, apperror.ErrConflictingBoard
	}

	return overrides, nil
}

// Load - reads the yaml file at path. A missing file falls back to environment and defaults.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}
		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// ApplyOverrides - command line values win over the file. A size on the command line
// replaces a board file from the config and the other way around.
func (that *Config) ApplyOverrides(overrides *Overrides) {
	if overrides == nil {
		return
	}

	if overrides.Port != nil {
		that.SocketPort = *overrides.Port
	}

	if overrides.Size != nil {
		that.Board.Size = *overrides.Size
		that.Board.File = ""
	}

	if overrides.File != nil {
		that.Board.File = *overrides.File
	}

	if overrides.Debug != nil {
		that.Debug = *overrides.Debug
	}
}

// Validate - checks ports and the board settings.
func (that *Config) Validate() error {
	for _, port := range []string{that.SocketPort, that.HTTPPort} {
		value, err := strconv.Atoi(port)
		if err != nil || value < 0 || value > 65535 {
			return fmt.Errorf("%w: %q", apperror.ErrInvalidPort, port)
		}
	}

	if that.Board.File == "" && that.Board.Size < 2 {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidBoardSize, that.Board.Size)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" || that.Port == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
