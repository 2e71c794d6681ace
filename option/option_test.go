package option_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mogud/lumen/logging"
	"github.com/mogud/lumen/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type consoleOpt struct {
	Formatter    string        `koanf:"Formatter"`
	DefaultLevel logging.Level `koanf:"DefaultLevel"`
	NoColor      bool          `koanf:"NoColor"`
}

const optionJSON = `{
	// 控制台 sink 配置
	"Logging": {
		"Console": {
			"Formatter": "Default",
			"DefaultLevel": 3,
			"NoColor": true
		}
	}
}`

func writeOptionFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "option.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestAddJSONFileAndGet(t *testing.T) {
	option.Reset()

	path := writeOptionFile(t, optionJSON)
	require.NoError(t, option.AddJSONFile(path))

	var opt consoleOpt
	require.NoError(t, option.GetByKey("Logging:Console", &opt))
	assert.Equal(t, "Default", opt.Formatter)
	assert.Equal(t, logging.INFO, opt.DefaultLevel)
	assert.True(t, opt.NoColor)
}

func TestBindTypeGet(t *testing.T) {
	option.Reset()

	path := writeOptionFile(t, optionJSON)
	require.NoError(t, option.AddJSONFile(path))

	option.BindType[consoleOpt]("Logging:Console")
	opt, err := option.Get[consoleOpt]()
	require.NoError(t, err)
	assert.Equal(t, "Default", opt.Formatter)
	assert.Equal(t, logging.INFO, opt.DefaultLevel)
}

func TestReloadNotifiesChange(t *testing.T) {
	option.Reset()

	path := writeOptionFile(t, optionJSON)
	require.NoError(t, option.AddJSONFile(path))

	changed := 0
	option.OnChanged(func() {
		changed++
	})

	updated := `{"Logging": {"Console": {"Formatter": "Color", "DefaultLevel": 2}}}`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0644))
	require.NoError(t, option.Reload())

	assert.Equal(t, 1, changed)

	var opt consoleOpt
	require.NoError(t, option.GetByKey("Logging:Console", &opt))
	assert.Equal(t, "Color", opt.Formatter)
	assert.Equal(t, logging.DEBUG, opt.DefaultLevel)
}

func TestAddJSONFileMissing(t *testing.T) {
	option.Reset()

	assert.Error(t, option.AddJSONFile(filepath.Join(t.TempDir(), "absent.json")))
}
