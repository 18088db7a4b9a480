package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP server in responses.
var UserAgent = "Go-DateRange/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go DateRange"
	AppID             = "com.github.tartampluch.go-daterange"
	BinaryName        = "go-daterange"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	SettingsFileName  = "settings.yaml"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
	ExitCodeUsage   = 2
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for logs and the settings file.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion   = "version"
	FlagDebug     = "debug"
	FlagConfig    = "config"
	FlagStart     = "start"
	FlagEnd       = "end"
	FlagFrequency = "frequency"
	FlagLang      = "lang"
	FlagTimezone  = "tz"
	FlagOutput    = "output"
	FlagServe     = "serve"
	FlagPort      = "port"
	FlagCountOnly = "count-only"
	FlagCompact   = "compact"
	FlagSave      = "save"

	FlagShortFrequency = "f"
	FlagShortOutput    = "o"

	FlagDescVersion   = "Show application version and exit"
	FlagDescDebug     = "Enable debug logging to stdout"
	FlagDescConfig    = "Path to the settings file (created with defaults if missing)"
	FlagDescStart     = "First date of the range (YYYY-MM-DD, default today)"
	FlagDescEnd       = "Last date of the range (YYYY-MM-DD, default today)"
	FlagDescFrequency = "Step unit: year, month, date, hour or minute"
	FlagDescLang      = "Display language (en, ko)"
	FlagDescTimezone  = "IANA time zone used to read the dates (default: local)"
	FlagDescOutput    = "Output encoding: text, json, ics or cbor"
	FlagDescServe     = "Serve the HTTP API instead of printing a single range"
	FlagDescPort      = "HTTP port used with --serve"
	FlagDescCountOnly = "Print only the total line"
	FlagDescCompact   = "With ics output, emit one recurring event when the range is regular"
	FlagDescSave      = "Persist the effective options to the settings file"
	MsgUsageHeader    = "Usage of %s:\n"
	MsgVersionOutput  = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyFreqYear   = "freq_year"
	TKeyFreqMonth  = "freq_month"
	TKeyFreqDate   = "freq_date"
	TKeyFreqHour   = "freq_hour"
	TKeyFreqMinute = "freq_minute"

	TKeyLayoutDate   = "layout_date"   // Go time layout for year/month/date lists
	TKeyLayoutHour   = "layout_hour"   // Go time layout for hourly lists
	TKeyLayoutMinute = "layout_minute" // Go time layout for minute lists

	TKeyTotal      = "total"       // Requires Count
	TKeyEmptyRange = "empty_range" // Shown by the text encoder when there is nothing to list
	TKeyEvtSummary = "event_summary"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultPort      = "18090"
	DefaultLanguage  = "en"
	DefaultFrequency = "date"
	DefaultOutput    = OutputText

	OutputText = "text"
	OutputJSON = "json"
	OutputICS  = "ics"
	OutputCBOR = "cbor"

	// DateFormatInput is the only accepted layout for range endpoints.
	DateFormatInput = "2006-01-02"
	// DateFormatISO is used for machine-readable instants in JSON/CBOR.
	DateFormatISO = time.RFC3339

	// MaxServedItems caps the ranges the HTTP API generates per request.
	MaxServedItems = 100_000

	UIDSalt       = "go-daterange-v1-"
	UIDHashLength = 16
	FormatUID     = "%s@%s"
)

// SupportedOutputs lists the encodings accepted by --output and ?format=.
var SupportedOutputs = []string{OutputText, OutputJSON, OutputICS, OutputCBOR}

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go DateRange//Engine//EN"
	ICalCalName = "Date Range"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "godaterange"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	// DTStampResolution truncates DTSTAMP so a feed is byte-stable for a day.
	DTStampResolution = 24 * time.Hour

	// StubVCalendar is the minimal valid iCalendar object used for an empty range.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	AllowedMethods     = "GET, HEAD"
	AddrSeparator      = ":"

	RouteHealth = "/health"
	RouteRange  = "/api/range"
	RouteDiff   = "/api/diff"

	QueryStart     = "start"
	QueryEnd       = "end"
	QueryFrequency = "frequency"
	QueryLang      = "lang"
	QueryFormat    = "format"
	QueryCompact   = "compact"

	HealthBody = "ok"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType   = "Content-Type"
	HeaderCacheControl  = "Cache-Control"
	HeaderETag          = "ETag"
	HeaderAllow         = "Allow"
	HeaderXContentType  = "X-Content-Type-Options"
	HeaderServer        = "Server"
	HeaderIfNoneMatch   = "If-None-Match"
	HeaderAccept        = "Accept"
	HeaderAcceptLang    = "Accept-Language"
	HeaderContentLength = "Content-Length"

	MimeTextCalendar = "text/calendar; charset=utf-8"
	MimeJSON         = "application/json; charset=utf-8"
	MimeCBOR         = "application/cbor"
	MimeTextPlain    = "text/plain; charset=utf-8"
	MimeNoSniff      = "nosniff"

	// Bare media types matched against Accept.
	MimeTypeCalendar = "text/calendar"
	MimeTypePlain    = "text/plain"

	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidArgument  = "invalid argument"
	ErrInvalidFrequency = "invalid frequency"
	ErrInvalidDate      = "invalid date, expected YYYY-MM-DD"
	ErrInvalidTimezone  = "unknown time zone"
	ErrInvalidOutput    = "unsupported output format"
	ErrRangeTooLarge    = "range exceeds the item limit"
	ErrInvalidCompact   = "compact must be a boolean"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrJSONEncode       = "failed to encode JSON document"
	ErrCBOREncode       = "failed to encode CBOR document"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user config dir"
	ErrCreateDir        = "could not create app dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrUsage            = "invalid usage"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrSettingsPath     = "settings path is empty"
	ErrSettingsRead     = "failed to read settings file"
	ErrSettingsParse    = "failed to parse settings file"
	ErrSettingsWrite    = "failed to write settings file"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgInternalErr  = "Internal Server Error"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackTotal      = "Total = %d"
	FallbackEmptyRange = "(no dates)"
	FallbackSummary    = "Date range: %s"

	MsgAppStop       = "Application stopped gracefully"
	MsgAppStarting   = "Starting application"
	MsgRangeStarted  = "Range generation started"
	MsgRangeDone     = "Range generation successful"
	MsgRangeEmpty    = "End precedes start, range is empty"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgBadRequest    = "Rejected request"
	MsgRendered      = "Range rendered"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgSettingsNew   = "Settings file created with defaults"
	MsgSettingsUsed  = "Effective settings"
	MsgSettingsSaved = "Settings saved"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyPath      = "path"
	LogKeyFrequency = "frequency"
	LogKeyStart     = "start"
	LogKeyEnd       = "end"
	LogKeyDiff      = "diff"
	LogKeyCount     = "count"
	LogKeyOutput    = "output"
	LogKeyTimezone  = "timezone"
	LogKeySizeBytes = "size_bytes"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyBuilt   = "built"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompEngine   = "engine"
	CompServer   = "server"
	CompMain     = "main"
	CompI18n     = "i18n"
	CompSettings = "settings"
	CompRender   = "render"
)
