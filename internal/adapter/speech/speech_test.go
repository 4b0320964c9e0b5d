package speech

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/heartmarshall/wordtree/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_Synthesize(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var got map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, map[string]any{
			"text":    "Hello World",
			"voice":   "en-US-AriaNeural",
			"rate":    "+0%",
			"pitch":   "+0Hz",
			"preview": true,
		}, got)

		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, Voice{Name: "en-US-AriaNeural", Rate: "+0%", Pitch: "+0Hz", Preview: true}, time.Second, newTestLogger())
	a, err := c.Synthesize(context.Background(), "Hello World")
	require.NoError(t, err)
	assert.Equal(t, "Hello World", a.Text)
	assert.Equal(t, "audio/mpeg", a.ContentType)
	assert.Equal(t, []byte("ID3"), a.Data)
}

func TestClient_Synthesize_Disabled(t *testing.T) {
	t.Parallel()

	c := NewClient("", Voice{}, 0, newTestLogger())
	assert.False(t, c.Enabled())
	_, err := c.Synthesize(context.Background(), "x")
	require.ErrorIs(t, err, ErrDisabled)
}

func TestClient_Synthesize_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"server error", http.StatusInternalServerError, "", domain.ErrUnavailable},
		{"empty stream", http.StatusOK, "", domain.ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, Voice{}, time.Second, newTestLogger())
			_, err := c.Synthesize(context.Background(), "x")
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_Ping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"method not allowed still up", http.StatusMethodNotAllowed, false},
		{"ok", http.StatusOK, false},
		{"bad gateway", http.StatusBadGateway, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodHead, r.Method)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			err := NewClient(srv.URL, Voice{}, time.Second, newTestLogger()).Ping(context.Background())
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrUnavailable)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestClient_Ping_Disabled(t *testing.T) {
	t.Parallel()

	err := NewClient("", Voice{}, 0, newTestLogger()).Ping(context.Background())
	require.ErrorIs(t, err, ErrDisabled)
}

func TestSink_Save(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := NewSink(filepath.Join(dir, "clips"), "", newTestLogger())
	s.now = func() time.Time { return time.Unix(0, 42) }

	path, err := s.Save(context.Background(), &domain.Clip{Text: "Ice Cream!", ContentType: "audio/mpeg", Data: []byte("abc")})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "clips", "ice_cream-42.mp3"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), data)
}

func TestSink_Save_RunsPlayer(t *testing.T) {
	t.Parallel()

	s := NewSink(t.TempDir(), "mpv --no-video", newTestLogger())

	var gotName string
	var gotArgs []string
	s.run = func(_ context.Context, name string, args ...string) error {
		gotName, gotArgs = name, args
		return nil
	}

	path, err := s.Save(context.Background(), &domain.Clip{Text: "cat", ContentType: "audio/wav", Data: []byte("x")})
	require.NoError(t, err)
	assert.Equal(t, "mpv", gotName)
	assert.Equal(t, []string{"--no-video", path}, gotArgs)
	assert.Equal(t, ".wav", filepath.Ext(path))
}

func TestSink_Save_PlayerError(t *testing.T) {
	t.Parallel()

	s := NewSink(t.TempDir(), "play", newTestLogger())
	s.run = func(context.Context, string, ...string) error { return errors.New("exit status 1") }

	path, err := s.Save(context.Background(), &domain.Clip{Text: "cat", Data: []byte("x")})
	require.Error(t, err)
	assert.NotEmpty(t, path, "clip is kept even when playback fails")
}

func TestSlugAndExtension(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "clip", slug("!!!"))
	assert.Equal(t, "a_b", slug("a  b"))
	assert.Equal(t, "кот", slug("Кот"))
	assert.Equal(t, ".bin", extension(""))
	assert.Equal(t, ".mp3", extension("audio/mpeg; charset=binary"))
	assert.Equal(t, ".ogg", extension("audio/ogg"))
}
