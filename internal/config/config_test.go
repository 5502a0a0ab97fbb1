package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/minesweeper-backend/internal/apperror"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads the yaml file", func(t *testing.T) {
		// Given: a config file with every section
		path := writeConfig(t, `
log-level: debug
socket-port: "5555"
http-port: "8081"
debug: true
board:
  size: 7
redis:
  enabled: true
  host: redis
  port: "6380"
`)

		// When: it is loaded
		conf, err := Load(path)

		// Then: all values are taken from the file
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "5555", conf.SocketPort)
		assert.Equal(t, "8081", conf.HTTPPort)
		assert.True(t, conf.Debug)
		assert.Equal(t, 7, conf.Board.Size)
		assert.Empty(t, conf.Board.File)
		assert.True(t, conf.Redis.Enabled)
		assert.Equal(t, "redis:6380", conf.Redis.GetRedisAddr())
	})

	t.Run("Fills defaults", func(t *testing.T) {
		conf, err := Load(writeConfig(t, "log-level: info\n"))

		require.NoError(t, err)
		assert.Equal(t, "4444", conf.SocketPort)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.False(t, conf.Debug)
		assert.Equal(t, 10, conf.Board.Size)
		assert.False(t, conf.Redis.Enabled)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Missing file falls back to the environment", func(t *testing.T) {
		t.Setenv("SOCKET_PORT", "4545")

		conf, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		require.NoError(t, err)
		assert.Equal(t, "4545", conf.SocketPort)
		assert.Equal(t, 10, conf.Board.Size)
	})

	t.Run("MustLoad panics on a broken file", func(t *testing.T) {
		path := writeConfig(t, "board: [not, a, map\n")

		assert.Panics(t, func() {
			MustLoad(path)
		})
	})
}

func TestParseFlags(t *testing.T) {
	t.Run("No flags leaves everything unset", func(t *testing.T) {
		overrides, err := ParseFlags(nil)

		require.NoError(t, err)
		assert.Equal(t, DefaultPath, overrides.ConfigPath)
		assert.Nil(t, overrides.Port)
		assert.Nil(t, overrides.Size)
		assert.Nil(t, overrides.File)
		assert.Nil(t, overrides.Debug)
	})

	t.Run("Reads every flag", func(t *testing.T) {
		overrides, err := ParseFlags([]string{"-config-path", "other.yml", "-port", "4000", "-size", "5", "-debug"})

		require.NoError(t, err)
		assert.Equal(t, "other.yml", overrides.ConfigPath)
		require.NotNil(t, overrides.Port)
		assert.Equal(t, "4000", *overrides.Port)
		require.NotNil(t, overrides.Size)
		assert.Equal(t, 5, *overrides.Size)
		require.NotNil(t, overrides.Debug)
		assert.True(t, *overrides.Debug)
	})

	t.Run("Size and file are mutually exclusive", func(t *testing.T) {
		_, err := ParseFlags([]string{"-size", "5", "-file", "board.txt"})

		assert.ErrorIs(t, err, apperror.ErrConflictingBoard)
	})

	t.Run("Port out of range", func(t *testing.T) {
		_, err := ParseFlags([]string{"-port", "70000"})

		assert.ErrorIs(t, err, apperror.ErrInvalidPort)
	})

	t.Run("Unknown flag", func(t *testing.T) {
		_, err := ParseFlags([]string{"-colour", "red"})

		assert.Error(t, err)
	})
}

func TestConfig_ApplyOverrides(t *testing.T) {
	t.Run("Size replaces a configured board file", func(t *testing.T) {
		// Given: a config pointing at a board file
		conf := &Config{SocketPort: "4444", Board: Board{Size: 10, File: "boards/example.txt"}}
		size := 4
		port := "4000"
		debug := true

		// When: the command line asks for a random board
		conf.ApplyOverrides(&Overrides{Port: &port, Size: &size, Debug: &debug})

		// Then: the file is dropped
		assert.Equal(t, "4000", conf.SocketPort)
		assert.Equal(t, 4, conf.Board.Size)
		assert.Empty(t, conf.Board.File)
		assert.True(t, conf.Debug)
	})

	t.Run("File is kept alongside the configured size", func(t *testing.T) {
		conf := &Config{Board: Board{Size: 10}}
		file := "boards/example.txt"

		conf.ApplyOverrides(&Overrides{File: &file})

		assert.Equal(t, "boards/example.txt", conf.Board.File)
	})

	t.Run("Nil overrides", func(t *testing.T) {
		conf := &Config{SocketPort: "4444"}

		conf.ApplyOverrides(nil)

		assert.Equal(t, "4444", conf.SocketPort)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{SocketPort: "4444", HTTPPort: "9090", Board: Board{Size: 10}}
	}

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("Bad port", func(t *testing.T) {
		conf := valid()
		conf.HTTPPort = "http"

		assert.ErrorIs(t, conf.Validate(), apperror.ErrInvalidPort)
	})

	t.Run("Board too small", func(t *testing.T) {
		conf := valid()
		conf.Board.Size = 1

		assert.ErrorIs(t, conf.Validate(), apperror.ErrInvalidBoardSize)
	})

	t.Run("Size is not checked when a file is given", func(t *testing.T) {
		conf := valid()
		conf.Board.Size = 0
		conf.Board.File = "boards/example.txt"

		assert.NoError(t, conf.Validate())
	})
}

func TestRedis_GetRedisAddr(t *testing.T) {
	assert.Empty(t, (&Redis{Port: "6379"}).GetRedisAddr())
}
