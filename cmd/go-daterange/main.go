package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/tartampluch/go-daterange/internal/config"
	"github.com/tartampluch/go-daterange/internal/engine"
	"github.com/tartampluch/go-daterange/internal/server"
	"github.com/tartampluch/go-daterange/internal/view"
)

// options holds the parsed command line.
type options struct {
	flags *pflag.FlagSet

	showVersion bool
	debugMode   bool
	serve       bool
	countOnly   bool
	compact     bool
	save        bool
	configPath  string

	start     string
	end       string
	frequency string
	lang      string
	timezone  string
	output    string
	port      string
}

// main is the application entry point.
// It delegates execution to runMain to ensure that deferred function calls
// (like closing log files) are executed before the process terminates.
// os.Exit() does not run defers, so we must return an integer code first.
func main() {
	os.Exit(runMain(os.Args[1:], os.Stdout, os.Stderr))
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
// Ranges are written to stdout; logs go to stderr and the log file.
func runMain(args []string, stdout, stderr io.Writer) int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return config.ExitCodeSuccess
	}
	if err != nil {
		return config.ExitCodeUsage
	}

	if opts.showVersion {
		printVersion(stdout)
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 2. Logging Initialization
	// -------------------------------------------------------------------------
	logCloser := setupLogging(opts.logLevel(), stderr)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close() // Best effort close
		}()
	}

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	// -------------------------------------------------------------------------
	// 4. Application Logic
	// -------------------------------------------------------------------------
	if err := run(ctx, opts, stdout); err != nil {
		var reqErr *engine.RequestError
		if errors.As(err, &reqErr) {
			slog.Error(config.ErrUsage,
				config.LogKeyComponent, config.CompMain,
				config.LogKeyError, err,
			)
			fmt.Fprintln(stderr, err)
			return config.ExitCodeUsage
		}

		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := pflag.NewFlagSet(config.BinaryName, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, config.MsgUsageHeader, config.BinaryName)
		fs.PrintDefaults()
	}

	fs.BoolVar(&opts.showVersion, config.FlagVersion, false, config.FlagDescVersion)
	fs.BoolVar(&opts.debugMode, config.FlagDebug, false, config.FlagDescDebug)
	fs.BoolVar(&opts.serve, config.FlagServe, false, config.FlagDescServe)
	fs.BoolVar(&opts.countOnly, config.FlagCountOnly, false, config.FlagDescCountOnly)
	fs.BoolVar(&opts.compact, config.FlagCompact, false, config.FlagDescCompact)
	fs.BoolVar(&opts.save, config.FlagSave, false, config.FlagDescSave)
	fs.StringVar(&opts.configPath, config.FlagConfig, "", config.FlagDescConfig)

	fs.StringVar(&opts.start, config.FlagStart, "", config.FlagDescStart)
	fs.StringVar(&opts.end, config.FlagEnd, "", config.FlagDescEnd)
	fs.StringVarP(&opts.frequency, config.FlagFrequency, config.FlagShortFrequency, config.DefaultFrequency, config.FlagDescFrequency)
	fs.StringVar(&opts.lang, config.FlagLang, config.DefaultLanguage, config.FlagDescLang)
	fs.StringVar(&opts.timezone, config.FlagTimezone, "", config.FlagDescTimezone)
	fs.StringVarP(&opts.output, config.FlagOutput, config.FlagShortOutput, config.DefaultOutput, config.FlagDescOutput)
	fs.StringVar(&opts.port, config.FlagPort, config.DefaultPort, config.FlagDescPort)

	if err := fs.Parse(args); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintln(stderr, err)
			fs.Usage()
		}
		return nil, err
	}
	opts.flags = fs
	return opts, nil
}

// applyTo overrides s with every flag given on the command line.
func (o *options) applyTo(s *config.Settings) {
	overrides := map[string]*string{
		config.FlagStart:     &s.Start,
		config.FlagEnd:       &s.End,
		config.FlagFrequency: &s.Frequency,
		config.FlagLang:      &s.Language,
		config.FlagTimezone:  &s.Timezone,
		config.FlagOutput:    &s.Output,
		config.FlagPort:      &s.ListenPort,
	}
	values := map[string]string{
		config.FlagStart:     o.start,
		config.FlagEnd:       o.end,
		config.FlagFrequency: o.frequency,
		config.FlagLang:      o.lang,
		config.FlagTimezone:  o.timezone,
		config.FlagOutput:    o.output,
		config.FlagPort:      o.port,
	}
	for name, field := range overrides {
		if o.flags.Changed(name) {
			*field = values[name]
		}
	}
}

// loadSettings reads the settings file and layers the flags on top.
func loadSettings(opts *options) (*config.Settings, string, error) {
	path := opts.configPath
	if path == "" {
		var err error
		if path, err = config.DefaultSettingsPath(); err != nil {
			return nil, "", err
		}
	}

	settings, err := config.LoadSettings(path)
	if err != nil {
		if settings == nil {
			return nil, path, err
		}
		// First-run write failed; the defaults are still usable.
		slog.Warn(config.ErrSettingsWrite,
			config.LogKeyComponent, config.CompSettings,
			config.LogKeyPath, path,
			config.LogKeyError, err,
		)
	}

	opts.applyTo(settings)
	return settings, path, nil
}

// run wires dependencies and either prints one range or serves the API.
func run(ctx context.Context, opts *options, stdout io.Writer) error {
	settings, path, err := loadSettings(opts)
	if err != nil {
		return err
	}

	if !view.ValidOutput(settings.Output) {
		return &engine.RequestError{Field: config.FlagOutput, Value: settings.Output, Err: view.ErrUnsupportedOutput}
	}
	if _, err := engine.ParseGranularity(settings.Frequency); err != nil {
		return &engine.RequestError{Field: config.FlagFrequency, Value: settings.Frequency, Err: err}
	}
	loc, err := settings.Location()
	if err != nil {
		return &engine.RequestError{Field: config.FlagTimezone, Value: settings.Timezone, Err: err}
	}

	slog.Debug(config.MsgSettingsUsed,
		config.LogKeyComponent, config.CompSettings,
		config.LogKeyPath, path,
		config.LogKeyLang, settings.Language,
		config.LogKeyFrequency, settings.Frequency,
		config.LogKeyOutput, settings.Output,
		config.LogKeyTimezone, loc.String(),
	)

	if opts.save {
		if err := config.SaveSettings(path, settings); err != nil {
			return err
		}
		slog.Info(config.MsgSettingsSaved,
			config.LogKeyComponent, config.CompSettings,
			config.LogKeyPath, path,
		)
	}

	gen := engine.NewGenerator(loc)

	if opts.serve {
		gen.Limit = config.MaxServedItems
		srv := server.NewRangeServer(settings.ListenPort, gen, settings.Language)
		return srv.Start(ctx)
	}

	res, err := gen.Run(ctx, engine.Request{
		Start:     settings.Start,
		End:       settings.End,
		Frequency: settings.Frequency,
	})
	if err != nil {
		return err
	}

	tr := view.NewTranslator(settings.Language)
	if opts.countOnly {
		_, err := fmt.Fprintln(stdout, tr.Total(res.Count()))
		return err
	}
	return view.Encode(stdout, settings.Output, res, tr, view.Options{Compact: opts.compact})
}

// printVersion outputs the build information.
func printVersion(w io.Writer) {
	fmt.Fprintf(w, config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyCommit, config.Commit),
			slog.String(config.LogKeyBuilt, config.Date),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// logLevel keeps one-shot runs quiet; the server reports its lifecycle.
func (o *options) logLevel() slog.Level {
	switch {
	case o.debugMode:
		return slog.LevelDebug
	case o.serve:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// setupLogging configures the default slog logger. Stdout is reserved for
// the generated range, so the console copy goes to the given writer.
func setupLogging(level slog.Level, console io.Writer) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	writers = append(writers, console)

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(console, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
