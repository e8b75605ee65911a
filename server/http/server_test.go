package http

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := zerolog.Nop()
	return NewServer(Config{
		Logger:       &logger,
		ListenAddr:   ":0",
		StaticDir:    t.TempDir(),
		RoomIDLength: 6,
	})
}

func TestPresenterPageMintsRoom(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/presenter", nil))

	require.Equal(t, http.StatusFound, w.Code)
	assert.Regexp(t,
		regexp.MustCompile(`^/presenter\.html\?room=[a-z]{6}$`),
		w.Header().Get("Location"))
}

func TestViewerPageRequiresRoom(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/viewer", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Room ID is required")
}

func TestViewerPageRedirects(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/viewer?room=abcdef", nil))

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/viewer.html?room=abcdef", w.Header().Get("Location"))
}

func TestGenerateRoomID(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		id := generateRoomID(6)
		assert.Regexp(t, regexp.MustCompile(`^[a-z]{6}$`), id)
		seen[id] = struct{}{}
	}
	// 26^6 ids, 50 draws colliding down to one would mean a broken rng
	assert.Greater(t, len(seen), 1)
}
