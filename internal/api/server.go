// Package api provides the HTTP and WebSocket bridge between the UI shell and
// the command surface.
package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PurpleSec/escape"
	"github.com/PurpleSec/logx"
	"github.com/PurpleSec/routex"

	"deskagent/internal/command"
)

const (
	prefix = `^/api/v1`

	maxBody = 1 << 20
	timeout = time.Second * 30
)

// Info is reported on the identity endpoint
type Info struct {
	Version        string   `json:"version"`
	MachineID      string   `json:"machine_id"`
	ConnectionCode string   `json:"connection_code"`
	Addresses      []string `json:"addresses"`
	Commands       []string `json:"commands"`
}

// Auth holds the bridge access settings
type Auth struct {
	// Token is an optional bearer token accepted in addition to the
	// connection code
	Token string

	// Origins lists the browser origins allowed to call the bridge. Requests
	// without an Origin header are not browser initiated and are allowed.
	Origins []string
}

// Server provides the command bridge
type Server struct {
	surface *command.Surface
	log     logx.Log
	info    Info

	creds   []string
	origins map[string]struct{}

	mux     *routex.Mux
	ws      *wsHandler
	handler http.Handler
	srv     *http.Server
}

// NewServer creates a bridge for surface. Every request except /health must
// carry the connection code from info or the configured token as a bearer
// token. With neither set every request is rejected.
func NewServer(surface *command.Surface, auth Auth, info Info, log logx.Log) *Server {
	s := &Server{
		surface: surface,
		log:     log,
		info:    info,
		origins: make(map[string]struct{}, len(auth.Origins)),
	}
	for _, v := range []string{auth.Token, info.ConnectionCode} {
		if len(v) > 0 {
			s.creds = append(s.creds, v)
		}
	}
	for _, o := range auth.Origins {
		s.origins[normalizeOrigin(o)] = struct{}{}
	}
	s.info.Commands = command.Commands()
	s.ws = newWSHandler(s)

	s.mux = routex.NewContext(context.Background())
	s.mux.Middleware(encoding)
	s.mux.Error = routex.ErrorFunc(writeError)
	configureRoutes(s, s.mux)

	root := http.NewServeMux()
	root.HandleFunc("/health", s.handleHealth)
	root.HandleFunc("/ws", s.ws.handleWebSocket)
	root.Handle("/", s.mux)
	s.handler = s.guardMiddleware(s.authMiddleware(s.recoverMiddleware(root)))
	s.srv = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: timeout,
		IdleTimeout:       timeout * 4,
	}
	return s
}

func configureRoutes(s *Server, m *routex.Mux) {
	m.Must(prefix+`/identity$`, routex.Func(s.httpIdentity), http.MethodGet)
	m.Must(
		prefix+`/mouse/move$`,
		routex.Marshal(valMove, command.MoveArgs{}, routex.MarshalFunc(s.httpMouseMove)),
		http.MethodPost,
	)
	m.Must(
		prefix+`/mouse/(?P<action>click|down|up)$`,
		routex.Marshal(valButton, command.ButtonArgs{}, routex.MarshalFunc(s.httpMouseButton)),
		http.MethodPost,
	)
	m.Must(
		prefix+`/mouse/scroll$`,
		routex.Marshal(valScroll, command.ScrollArgs{}, routex.MarshalFunc(s.httpMouseScroll)),
		http.MethodPost,
	)
	m.Must(
		prefix+`/keyboard/type$`,
		routex.Marshal(valText, command.TextArgs{}, routex.MarshalFunc(s.httpKeyboardType)),
		http.MethodPost,
	)
	m.Must(
		prefix+`/keyboard/key$`,
		routex.Marshal(valKey, command.KeyArgs{}, routex.MarshalFunc(s.httpKeyboardKey)),
		http.MethodPost,
	)
	m.Must(prefix+`/screen$`, routex.Func(s.httpScreen), http.MethodGet)
	m.Must(prefix+`/invoke/(?P<command>[a-z_]+)$`, routex.Func(s.httpInvoke), http.MethodPost)
}

// Handler returns the HTTP handler with all middleware applied
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens on addr and serves until Shutdown is called
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		s.log.Error("API: Failed to listen on %s: %s", addr, err)
		return err
	}
	return s.Serve(ln)
}

// Serve serves the bridge on ln. It blocks until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	s.log.Info("API: Command bridge listening on %s", ln.Addr())
	if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		s.log.Error("API: Server stopped: %s", err)
		return err
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// recoverMiddleware prevents panics from crashing the whole server
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.log.Error("API: Recovered panic serving %s: %v", r.URL.Path, err)
				writeError(http.StatusInternalServerError, "internal server error", w, nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// authMiddleware checks the bearer credential. Browsers cannot set headers on
// WebSocket upgrades so /ws also accepts a token query parameter.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.Debug("API: %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)

		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}
		if v := r.Header.Get("Authorization"); strings.HasPrefix(v, "Bearer ") && s.validCredential(v[7:]) {
			next.ServeHTTP(w, r)
			return
		}
		if r.URL.Path == "/ws" && s.validCredential(r.URL.Query().Get("token")) {
			next.ServeHTTP(w, r)
			return
		}
		s.log.Warning("API: Rejected unauthenticated %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
		writeError(http.StatusUnauthorized, "unauthorized", w, nil)
	})
}

// guardMiddleware rejects browser requests from foreign origins and POST
// bodies that are not JSON, and bounds the body size.
func (s *Server) guardMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}
		if o := r.Header.Get("Origin"); len(o) > 0 && !s.allowedOrigin(o) {
			s.log.Warning("API: Rejected %s %s from origin %q", r.Method, r.URL.Path, o)
			writeError(http.StatusForbidden, "origin not allowed", w, nil)
			return
		}
		if r.Method == http.MethodPost {
			if t, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || t != "application/json" {
				writeError(http.StatusUnsupportedMediaType, "content type must be application/json", w, nil)
				return
			}
		}
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBody)
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) validCredential(v string) bool {
	if len(v) == 0 {
		return false
	}
	ok := false
	for _, c := range s.creds {
		if subtle.ConstantTimeCompare([]byte(v), []byte(c)) == 1 {
			ok = true
		}
	}
	return ok
}

func (s *Server) allowedOrigin(o string) bool {
	_, ok := s.origins[normalizeOrigin(o)]
	return ok
}

func normalizeOrigin(o string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(o)), "/")
}

func encoding(_ context.Context, w http.ResponseWriter, _ *routex.Request) bool {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return true
}

func writeError(c int, e string, w http.ResponseWriter, _ *routex.Request) {
	writeKindError(c, "", e, w)
}

func writeKindError(c int, kind, e string, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(c)
	w.Write([]byte(`{"source": "deskagent", "code": ` + strconv.Itoa(c) + `, "kind": `))
	if len(kind) == 0 {
		kind = "request"
	}
	w.Write([]byte(escape.JSON(kind) + `, "error": `))
	if len(e) > 0 {
		w.Write([]byte(escape.JSON(e)))
	} else {
		w.Write([]byte(`""`))
	}
	w.Write([]byte(`}`))
}

// statusOf maps a command failure to an HTTP status
func statusOf(err error) int {
	switch command.KindOf(err) {
	case command.InvalidArgument:
		return http.StatusBadRequest
	case command.NoDisplay:
		return http.StatusNotFound
	case command.ProviderInit, command.ProviderOperation:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// commandError logs and writes a command failure
func (s *Server) commandError(name string, err error, w http.ResponseWriter) {
	s.log.Warning("API: Command %s failed: %s", name, err)
	writeKindError(statusOf(err), command.KindOf(err).String(), err.Error(), w)
}

func (s *Server) reply(name string, res interface{}, err error, w http.ResponseWriter) {
	if err != nil {
		s.commandError(name, err, w)
		return
	}
	if res == nil {
		routex.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	routex.JSON(w, http.StatusOK, res)
}

// handleHealth handles GET /health (for monitoring)
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) httpIdentity(_ context.Context, w http.ResponseWriter, _ *routex.Request) {
	routex.JSON(w, http.StatusOK, s.info)
}

func (s *Server) httpScreen(_ context.Context, w http.ResponseWriter, _ *routex.Request) {
	r, err := s.surface.CaptureScreen()
	if err != nil {
		s.commandError(command.CaptureScreen, err, w)
		return
	}
	s.log.Debug("API: Captured %dx%d frame, sent %dx%d", r.OriginalWidth, r.OriginalHeight, r.ScaledWidth, r.ScaledHeight)
	routex.JSON(w, http.StatusOK, r)
}

func (s *Server) httpInvoke(_ context.Context, w http.ResponseWriter, r *routex.Request) {
	name := r.Values.StringDefault("command", "")
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(http.StatusBadRequest, err.Error(), w, r)
		return
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		body = nil
	}
	res, err := s.surface.Invoke(name, json.RawMessage(body))
	s.reply(name, res, err, w)
}

// invoke runs a command for the WebSocket channel
func (s *Server) invoke(name string, args json.RawMessage) (interface{}, error) {
	res, err := s.surface.Invoke(name, args)
	if err != nil {
		s.log.Warning("WS: Command %s failed: %s", name, err)
	}
	return res, err
}

var errBadBody = errors.New("invalid request body")
