package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/tartampluch/go-daterange/internal/config"
	"github.com/tartampluch/go-daterange/internal/engine"
	"github.com/tartampluch/go-daterange/internal/view"
)

// RangeServer exposes range generation over HTTP.
type RangeServer struct {
	Port      string
	Generator *engine.Generator

	// Language is used when neither ?lang= nor Accept-Language resolves.
	Language string
}

// NewRangeServer creates a new instance of the server.
func NewRangeServer(port string, gen *engine.Generator, lang string) *RangeServer {
	return &RangeServer{
		Port:      port,
		Generator: gen,
		Language:  lang,
	}
}

// Handler returns the routes served by the RangeServer.
func (s *RangeServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteHealth, s.handleHealth)
	mux.HandleFunc(config.RouteRange, s.handleRange)
	mux.HandleFunc(config.RouteDiff, s.handleDiff)
	return withServerHeader(mux)
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *RangeServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

func withServerHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(config.HeaderServer, config.UserAgent)
		next.ServeHTTP(w, r)
	})
}

func (s *RangeServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r) {
		return
	}
	s.writeBody(w, r, config.MimeTextPlain, []byte(config.HealthBody))
}

// handleRange serves a generated range in the negotiated encoding.
func (s *RangeServer) handleRange(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r) {
		return
	}

	query := r.URL.Query()
	format, err := negotiateFormat(r)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	compact, err := parseCompact(query.Get(config.QueryCompact))
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	res, err := s.Generator.Run(r.Context(), requestFromQuery(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	tr := view.NewTranslator(query.Get(config.QueryLang), r.Header.Get(config.HeaderAcceptLang), s.Language)

	var buf bytes.Buffer
	if err := view.Encode(&buf, format, res, tr, view.Options{Compact: compact}); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeBody(w, r, view.ContentType(format), buf.Bytes())
}

type diffResponse struct {
	Frequency engine.Granularity `json:"frequency"`
	Diff      int                `json:"diff"`
}

// handleDiff serves only the signed distance between the endpoints.
func (s *RangeServer) handleDiff(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r) {
		return
	}

	g, n, err := s.Generator.Diff(r.Context(), requestFromQuery(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	body, err := json.Marshal(diffResponse{Frequency: g, Diff: n})
	if err != nil {
		s.fail(w, r, fmt.Errorf("%s: %w", config.ErrJSONEncode, err))
		return
	}
	s.writeBody(w, r, config.MimeJSON, body)
}

// writeBody sends body with validators. A matching If-None-Match yields 304.
func (s *RangeServer) writeBody(w http.ResponseWriter, r *http.Request, contentType string, body []byte) {
	hash := sha256.Sum256(body)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	w.Header().Set(config.HeaderContentType, contentType)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, etag)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set(config.HeaderContentLength, strconv.Itoa(len(body)))
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(body); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}

// fail maps request errors to 400 and everything else to 500.
func (s *RangeServer) fail(w http.ResponseWriter, r *http.Request, err error) {
	var reqErr *engine.RequestError
	if errors.As(err, &reqErr) {
		s.badRequest(w, r, err)
		return
	}

	slog.Error(config.HTTPMsgInternalErr,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyPath, r.URL.Path,
		config.LogKeyError, err,
	)
	http.Error(w, config.HTTPMsgInternalErr, http.StatusInternalServerError)
}

func (s *RangeServer) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	slog.Warn(config.MsgBadRequest,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyPath, r.URL.Path,
		config.LogKeyError, err,
	)
	http.Error(w, err.Error(), http.StatusBadRequest)
}

// allowMethod accepts GET and HEAD only.
func allowMethod(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func requestFromQuery(r *http.Request) engine.Request {
	query := r.URL.Query()
	return engine.Request{
		Start:     query.Get(config.QueryStart),
		End:       query.Get(config.QueryEnd),
		Frequency: query.Get(config.QueryFrequency),
	}
}

// negotiateFormat prefers ?format=, then the Accept header, then JSON.
func negotiateFormat(r *http.Request) (string, error) {
	if format := r.URL.Query().Get(config.QueryFormat); format != "" {
		if !view.ValidOutput(format) {
			return "", &engine.RequestError{Field: config.QueryFormat, Value: format, Err: view.ErrUnsupportedOutput}
		}
		return format, nil
	}

	accept := r.Header.Get(config.HeaderAccept)
	switch {
	case strings.Contains(accept, config.MimeTypeCalendar):
		return config.OutputICS, nil
	case strings.Contains(accept, config.MimeCBOR):
		return config.OutputCBOR, nil
	case strings.Contains(accept, config.MimeTypePlain):
		return config.OutputText, nil
	default:
		return config.OutputJSON, nil
	}
}

func parseCompact(value string) (bool, error) {
	if value == "" {
		return false, nil
	}
	compact, err := strconv.ParseBool(value)
	if err != nil {
		return false, &engine.RequestError{Field: config.QueryCompact, Value: value, Err: errors.New(config.ErrInvalidCompact)}
	}
	return compact, nil
}
