package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-daterange/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
		{"DateFormatInput", config.DateFormatInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestDefaults_Sanity checks that default values belong to their closed sets.
func TestDefaults_Sanity(t *testing.T) {
	assert.Contains(t, config.Frequencies, config.DefaultFrequency)
	assert.Contains(t, config.SupportedLanguages, config.DefaultLanguage)
	assert.Contains(t, config.SupportedOutputs, config.DefaultOutput)
	assert.Len(t, config.Frequencies, 5, "Exactly five frequencies are recognised")

	_, err := time.Parse(config.DateFormatInput, "2020-12-01")
	assert.NoError(t, err, "Input layout must parse YYYY-MM-DD")
}

func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Go-DateRange/"))
}

func TestTimeouts(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.ShutdownTimeout, 0*time.Second)
	assert.Greater(t, config.ServerReadTimeout, 0*time.Second)
	assert.GreaterOrEqual(t, config.ServerWriteTimeout, config.ServerReadTimeout)
}

func TestStubVCalendar_IsWellFormed(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.StubVCalendar, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(config.StubVCalendar, "END:VCALENDAR\r\n"))
	assert.Contains(t, config.StubVCalendar, config.ICalProdid)
}
