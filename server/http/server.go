package http

import (
	"context"
	"crypto/rand"
	"errors"
	"log"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const (
	defaultShutdownDeadline = 10 * time.Second

	roomIDAlphabet = "abcdefghijklmnopqrstuvwxyz"
)

var (
	ErrUnexpected = errors.New("unexpected server error")
)

// Server is the page-serving surface: it mints room ids, redirects
// presenter/viewer browsers to their pages, and serves static assets.
// Joining and signaling happen over the websocket server, not here.
type Server struct {
	logger    zerolog.Logger
	roomIDLen int
	*http.Server
}

type Config struct {
	Logger       *zerolog.Logger
	ListenAddr   string
	StaticDir    string
	RoomIDLength int
}

func NewServer(cfg Config) *Server {
	srv := &Server{
		logger:    cfg.Logger.With().Str("component", "api-server").Logger(),
		roomIDLen: cfg.RoomIDLength,
	}

	r := chi.NewRouter()
	r.Use(srv.requestLogger)
	r.Get("/presenter", srv.presenterPage)
	r.Get("/viewer", srv.viewerPage)
	r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))

	srv.Server = &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}
	return srv
}

func (srv *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srv.logger.Trace().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request")
		next.ServeHTTP(w, r)
	})
}

func (srv *Server) presenterPage(w http.ResponseWriter, r *http.Request) {
	roomID := generateRoomID(srv.roomIDLen)
	srv.logger.Debug().Str("roomID", roomID).Msg("new room created")
	http.Redirect(w, r, "/presenter.html?room="+roomID, http.StatusFound)
}

func (srv *Server) viewerPage(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		srv.logger.Error().Msg("viewer tried to join without a room id")
		http.Error(w, "Room ID is required", http.StatusBadRequest)
		return
	}
	srv.logger.Debug().Str("roomID", roomID).Msg("viewer trying to join room")
	http.Redirect(w, r, "/viewer.html?room="+roomID, http.StatusFound)
}

func generateRoomID(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = roomIDAlphabet[randomIndex(len(roomIDAlphabet))]
	}
	return string(b)
}

func randomIndex(max int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		log.Panic("failed to generate random index:", err)
	}
	return int(n.Int64())
}

func (srv *Server) Run(ctx context.Context, wg *sync.WaitGroup, errc chan<- error) {
	defer func() {
		srv.logger.Debug().Msg("server stopped")
		wg.Done()
	}()

	hErr := make(chan error)
	go func() {
		hErr <- srv.ListenAndServe()
	}()

	srv.logger.Info().Str("addr", srv.Addr).Msg("server started")

	select {
	case err := <-hErr:
		if !errors.Is(err, http.ErrServerClosed) {
			errc <- errors.Join(ErrUnexpected, err)
		}
	case <-ctx.Done():
		shCtx, shCancel := context.WithTimeout(context.Background(), defaultShutdownDeadline)
		defer shCancel()
		if err := srv.Shutdown(shCtx); err != nil {
			srv.logger.Error().Err(err).Msg("server shutdown failed")
		}
	}
}
