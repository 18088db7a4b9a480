package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-daterange/internal/config"
	"github.com/tartampluch/go-daterange/internal/view"
)

// isolate points every user directory at a temp dir and returns a settings path.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	return filepath.Join(dir, "config", config.SettingsFileName)
}

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := runMain(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunMain_Version(t *testing.T) {
	code, stdout, _ := execute(t, "--version")

	assert.Equal(t, config.ExitCodeSuccess, code)
	assert.True(t, strings.HasPrefix(stdout, config.AppName+" version "+config.Version))
}

func TestRunMain_Help(t *testing.T) {
	code, stdout, stderr := execute(t, "--help")

	assert.Equal(t, config.ExitCodeSuccess, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "--"+config.FlagFrequency)
}

func TestRunMain_KoreanText(t *testing.T) {
	path := isolate(t)

	code, stdout, _ := execute(t, "--config", path, "--start", "2020-12-01", "--end", "2020-12-03", "--lang", "ko")

	require.Equal(t, config.ExitCodeSuccess, code)
	assert.Equal(t, "총 갯수 = 3개\n2020년 12월 01일\n2020년 12월 02일\n2020년 12월 03일\n", stdout)
}

func TestRunMain_CountOnly(t *testing.T) {
	path := isolate(t)

	code, stdout, _ := execute(t, "--config", path, "--start", "2020-12-01", "--end", "2020-12-02", "-f", "hour", "--count-only")

	require.Equal(t, config.ExitCodeSuccess, code)
	assert.Equal(t, "Total = 25 dates\n", stdout)
}

func TestRunMain_JSON(t *testing.T) {
	path := isolate(t)

	code, stdout, _ := execute(t, "--config", path, "--start", "2020-01-31", "--end", "2020-04-30", "-f", "month", "-o", "json", "--tz", "UTC")
	require.Equal(t, config.ExitCodeSuccess, code)

	var doc view.Document
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, 4, doc.Count)
	assert.Equal(t, 3, doc.Diff)
	assert.Equal(t, "2020-02-01T00:00:00Z", doc.Items[1].ISO)
}

func TestRunMain_CompactICS(t *testing.T) {
	path := isolate(t)

	code, stdout, _ := execute(t, "--config", path, "--start", "2020-12-01", "--end", "2020-12-10", "-o", "ics", "--compact", "--tz", "UTC")

	require.Equal(t, config.ExitCodeSuccess, code)
	assert.Equal(t, 1, strings.Count(stdout, "BEGIN:VEVENT"))
	assert.Contains(t, stdout, "RRULE:FREQ=DAILY;COUNT=10")
}

func TestRunMain_SettingsProvideDefaults(t *testing.T) {
	path := isolate(t)

	code, _, _ := execute(t, "--config", path, "--lang", "ko", "-f", "month", "--save")
	require.Equal(t, config.ExitCodeSuccess, code)

	saved, err := config.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "ko", saved.Language)
	assert.Equal(t, "month", saved.Frequency)

	// Later runs pick the saved language and frequency up without flags.
	code, stdout, _ := execute(t, "--config", path, "--start", "2020-01-01", "--end", "2020-02-01", "--count-only")
	require.Equal(t, config.ExitCodeSuccess, code)
	assert.Equal(t, "총 갯수 = 2개\n", stdout)
}

func TestRunMain_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--bogus"}},
		{"bad date", []string{"--start", "2020-12-32"}},
		{"bad frequency", []string{"-f", "week"}},
		{"bad output", []string{"-o", "xml"}},
		{"bad timezone", []string{"--tz", "Mars/Olympus_Mons"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := isolate(t)
			code, stdout, stderr := execute(t, append([]string{"--config", path}, tt.args...)...)

			assert.Equal(t, config.ExitCodeUsage, code)
			assert.Empty(t, stdout)
			assert.NotEmpty(t, stderr)
		})
	}
}

func TestOptions_LogLevel(t *testing.T) {
	assert.Equal(t, "WARN", (&options{}).logLevel().String())
	assert.Equal(t, "INFO", (&options{serve: true}).logLevel().String())
	assert.Equal(t, "DEBUG", (&options{serve: true, debugMode: true}).logLevel().String())
}
