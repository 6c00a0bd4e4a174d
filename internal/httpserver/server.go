// apps/go-server/internal/httpserver/server.go
//
// HTTP server wiring for the hangman backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access logs).
//   - Public endpoints: "/" (the browser page), "/health", "/leaderboard".
//   - Game endpoints (optional auth): POST /game/new, POST /game/guess, GET /game/state, POST /sound/toggle.
//   - Auth + profile/stat endpoints (require auth): /auth/*, /stats/me, /games/mine.
//
// Notes:
//   - Every browser gets an anonymous player cookie; its id keys the player's engine in the store.
//   - Finished games are recorded in the history DB on a best-effort basis.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/forca/apps/go-server/assets"
	"github.com/robalobadob/forca/apps/go-server/internal/config"
	"github.com/robalobadob/forca/apps/go-server/internal/game"
	"github.com/robalobadob/forca/apps/go-server/internal/history"
	"github.com/robalobadob/forca/apps/go-server/internal/present"
	"github.com/robalobadob/forca/apps/go-server/internal/store"
	"github.com/robalobadob/forca/apps/go-server/internal/words"
)

// Server bundles router, player store, content pools and history DB.
type Server struct {
	r       *chi.Mux
	cfg     config.Config
	store   store.Store
	pools   words.Pools
	history *history.Store

	// newEngine builds the engine for a new player; tests swap the picker.
	newEngine func() *game.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithEngineFactory replaces the engine constructor.
func WithEngineFactory(f func() *game.Engine) Option {
	return func(s *Server) { s.newEngine = f }
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, st store.Store, pools words.Pools, hist *history.Store, opts ...Option) *Server {
	s := &Server{
		r:         chi.NewRouter(),
		cfg:       cfg,
		store:     st,
		pools:     pools,
		history:   hist,
		newEngine: func() *game.Engine { return game.New() },
	}
	for _, o := range opts {
		o(s)
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(hlog.NewHandler(log.Logger))
	s.r.Use(accessLog)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(s.cors)

	// --- page + diagnostics ---
	s.r.Get("/", s.handleIndex)
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		wc, cc, rc := s.pools.Stats()
		writeJSON(w, http.StatusOK, map[string]int{"words": wc, "correctMessages": cc, "wrongMessages": rc, "players": s.store.Len()})
	})

	// Game endpoints — OPTIONAL AUTH (guests can play)
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		r.Post("/game/new", s.handleNewGame)
		r.Post("/game/guess", s.handleGuess)
		r.Get("/game/state", s.handleState)
		r.Post("/sound/toggle", s.handleToggleSound)
	})

	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	return s
}

// Start serves HTTP on addr until ctx is cancelled, sweeping idle players meanwhile.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}

	go s.sweepLoop(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

func (s *Server) sweepLoop(ctx context.Context) {
	idle := s.cfg.SessionIdleTimeout()
	t := time.NewTicker(idle / 4)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.store.Sweep(ctx, idle); n > 0 {
				log.Info().Int("players", n).Msg("swept idle players")
			}
		}
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one zerolog line per request.
func accessLog(next http.Handler) http.Handler {
	return hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
		lvl := zerolog.DebugLevel
		if status >= http.StatusInternalServerError {
			lvl = zerolog.ErrorLevel
		}
		hlog.FromRequest(r).WithLevel(lvl).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("reqId", chimw.GetReqID(r.Context())).
			Int("status", status).
			Int("size", size).
			Dur("duration", d).
			Msg("request")
	})(next)
}

// cors enables credentialed CORS for the configured origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ PAGE ---------------------------------------

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := fs.ReadFile(assets.Web(), "index.html")
	if err != nil {
		log.Error().Err(err).Msg("read index.html")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "page_unavailable"})
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

// ------------------------------ GAME ---------------------------------------

// gameRes is the common response of the game endpoints.
type gameRes struct {
	Outcome       *game.Outcome          `json:"outcome,omitempty"`
	Display       *game.DisplayState     `json:"display,omitempty"`
	Notifications []present.Notification `json:"notifications"`
	Muted         bool                   `json:"muted"`
}

// guessReq is the body of POST /game/guess.
type guessReq struct {
	Input string `json:"input"`
}

// handleNewGame starts (or restarts) the caller's game.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	_, a, err := s.player(w, r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "save_failed"})
		return
	}
	rec := &present.Recorder{}
	if err := a.NewGame(rec); err != nil {
		writeJSON(w, http.StatusConflict, gameRes{Notifications: rec.Notifications, Muted: a.Muted()})
		return
	}
	if snap, ok := a.Engine().Snapshot(); ok {
		hlog.FromRequest(r).Info().Str("gameId", snap.ID).Int("letters", len(snap.Pattern)).Msg("game started")
	}
	writeJSON(w, http.StatusOK, gameRes{Display: rec.Display, Notifications: rec.Notifications, Muted: a.Muted()})
}

// handleGuess submits one input to the caller's game and records the
// result once the game ends.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_json"})
		return
	}
	id, a, err := s.player(w, r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "save_failed"})
		return
	}

	rec := &present.Recorder{}
	out := a.Guess(req.Input, rec)
	if out.Ended() && out.Final != nil {
		s.recordResult(r, *out.Final, id)
	}

	res := gameRes{Outcome: &out, Display: rec.Display, Notifications: rec.Notifications, Muted: a.Muted()}
	if out.Kind == game.KindBusy {
		// The in-flight call still holds the session; don't wait on it.
		writeJSON(w, http.StatusConflict, res)
		return
	}
	if res.Display == nil {
		if st, ok := a.Engine().State(); ok {
			res.Display = &st
		}
	}
	writeJSON(w, http.StatusOK, res)
}

// handleState returns the caller's current display state.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	a, err := s.store.Get(r.Context(), anonID(r))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no_game"})
		return
	}
	st, ok := a.Engine().State()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no_game"})
		return
	}
	writeJSON(w, http.StatusOK, gameRes{Display: &st, Notifications: []present.Notification{}, Muted: a.Muted()})
}

// handleToggleSound flips the caller's mute flag.
func (s *Server) handleToggleSound(w http.ResponseWriter, r *http.Request) {
	_, a, err := s.player(w, r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "save_failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"muted": a.ToggleMute()})
}

// player returns the caller's id and adapter, creating both on first contact.
func (s *Server) player(w http.ResponseWriter, r *http.Request) (string, *present.Adapter, error) {
	id := s.playerID(w, r)
	a, err := s.store.GetOrCreate(r.Context(), id, func() *present.Adapter {
		return present.NewAdapter(s.newEngine(), s.pools)
	})
	if err != nil {
		log.Error().Err(err).Str("player", id).Msg("save player")
		return "", nil, err
	}
	return id, a, nil
}

// recordResult persists the game that snap captured as it finished and bumps
// the owner's stats.
// Failures are logged and never surface to the player.
func (s *Server) recordResult(r *http.Request, snap game.Snapshot, playerID string) {
	logger := hlog.FromRequest(r).With().Str("gameId", snap.ID).Str("status", string(snap.Status)).Logger()
	logger.Info().Int("wrong", len(snap.WrongLetters)).Msg("game finished")
	if s.history == nil {
		return
	}

	res, err := history.FromSnapshot(snap)
	if err != nil {
		logger.Warn().Err(err).Msg("build history row")
		return
	}
	me := currentUser(r)
	if me != nil {
		res.UserID = me.ID
	} else {
		res.AnonymousID = playerID
	}
	if err := s.history.Record(r.Context(), res); err != nil {
		logger.Warn().Err(err).Msg("record game")
	}
	if me != nil {
		if err := s.history.BumpStats(r.Context(), me.ID, snap.Status == game.StatusWon); err != nil {
			logger.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
		}
	}
}

// ---------------------------- player cookie --------------------------------

const anonCookieName = "forca_player"

// playerID returns the anonymous player id, setting the cookie on first visit.
func (s *Server) playerID(w http.ResponseWriter, r *http.Request) string {
	if id := anonID(r); id != "" {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     anonCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Production,
		SameSite: s.sameSite(),
		Expires:  time.Now().Add(180 * 24 * time.Hour),
	})
	return id
}

// anonID reads a well-formed player id from the cookie.
func anonID(r *http.Request) string {
	if c, err := r.Cookie(anonCookieName); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}
	return ""
}

func (s *Server) sameSite() http.SameSite {
	if s.cfg.Production {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

// ------------------------------- small util --------------------------------

// writeJSON encodes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}
