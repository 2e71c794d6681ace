package console_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/mogud/lumen/logging"
	"github.com/mogud/lumen/logging/handler/console"
	"github.com/stretchr/testify/assert"
)

func newData(path string, level logging.Level, msg string) *logging.LogData {
	return &logging.LogData{
		Time:    time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC),
		Path:    path,
		Level:   level,
		Message: func() string { return msg },
	}
}

func newTestHandler(t *testing.T, opt *console.Option) (*console.Handler, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	h := console.NewHandler()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	h.SetOutput(stdout, stderr)
	if opt != nil {
		assert.NoError(t, h.Construct(opt, nil))
	}
	return h, stdout, stderr
}

func TestConsoleFormatTemplate(t *testing.T) {
	h, stdout, _ := newTestHandler(t, &console.Option{
		Format:  "{level}|{message}",
		NoColor: true,
	})

	h.Log(newData("App", logging.INFO, "hello"))
	assert.Equal(t, "INFO|hello\n", stdout.String())
}

func TestConsoleErrorGoesToStderr(t *testing.T) {
	h, stdout, stderr := newTestHandler(t, &console.Option{
		Format:  "{level}|{message}",
		NoColor: true,
	})

	h.Log(newData("App", logging.WARN, "w"))
	h.Log(newData("App", logging.ERROR, "e"))
	h.Log(newData("App", logging.FATAL, "f"))

	assert.Equal(t, "WARN|w\n", stdout.String())
	assert.Equal(t, "ERROR|e\nFATAL|f\n", stderr.String())
}

func TestConsoleDefaultLevelFilter(t *testing.T) {
	h, stdout, _ := newTestHandler(t, &console.Option{
		Format:       "{level}|{message}",
		NoColor:      true,
		DefaultLevel: logging.WARN,
	})

	h.Log(newData("App", logging.INFO, "hidden"))
	h.Log(newData("App", logging.WARN, "shown"))

	assert.Equal(t, "WARN|shown\n", stdout.String())
}

func TestConsolePathPrefixFilter(t *testing.T) {
	h, stdout, stderr := newTestHandler(t, &console.Option{
		Format:       "{path}|{level}|{message}",
		NoColor:      true,
		DefaultLevel: logging.INFO,
		Filter: map[string]logging.Level{
			"App/Db": logging.ERROR,
		},
	})

	h.Log(newData("App/Db/Conn", logging.INFO, "hidden"))
	h.Log(newData("App/Db/Conn", logging.ERROR, "shown"))
	h.Log(newData("App/Web", logging.INFO, "shown"))

	assert.Equal(t, "App/Web|INFO|shown\n", stdout.String())
	assert.Equal(t, "App/Db/Conn|ERROR|shown\n", stderr.String())
}

func TestConsoleLongestPrefixFilterWins(t *testing.T) {
	h, stdout, _ := newTestHandler(t, &console.Option{
		Format:       "{path}|{level}|{message}",
		NoColor:      true,
		DefaultLevel: logging.INFO,
		Filter: map[string]logging.Level{
			"App":    logging.INFO,
			"App/Db": logging.ERROR,
		},
	})

	h.Log(newData("App/Db/Conn", logging.INFO, "hidden"))
	assert.Empty(t, stdout.String())

	h.Log(newData("App/Web", logging.INFO, "shown"))
	assert.Equal(t, "App/Web|INFO|shown\n", stdout.String())
}

func TestConsoleColorDefault(t *testing.T) {
	h, stdout, _ := newTestHandler(t, nil)

	h.Log(newData("App", logging.INFO, "hello"))
	assert.Contains(t, stdout.String(), "\x1b[")
	assert.Contains(t, stdout.String(), "hello")
}

func TestConsoleIgnoresNoneLevel(t *testing.T) {
	h, stdout, stderr := newTestHandler(t, nil)

	h.Log(newData("App", logging.NONE, "x"))
	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestConsoleRuntimeLevel(t *testing.T) {
	h, stdout, _ := newTestHandler(t, &console.Option{
		Format:  "{level}|{message}",
		NoColor: true,
	})

	assert.Equal(t, logging.INFO, h.DefaultLevel())
	h.SetDefaultLevel(logging.DEBUG)

	h.Log(newData("App", logging.DEBUG, "now visible"))
	assert.Equal(t, "DEBUG|now visible\n", stdout.String())
}

func TestConsoleBadFormat(t *testing.T) {
	h := console.NewHandler()
	assert.Error(t, h.Construct(&console.Option{Format: "{nope}"}, nil))
}
