package speech

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/heartmarshall/wordtree/internal/domain"
)

// Sink stores clips on disk and optionally hands them to a player command.
type Sink struct {
	dir    string
	player []string
	now    func() time.Time
	run    func(ctx context.Context, name string, args ...string) error
	log    *slog.Logger
}

// NewSink creates a Sink writing into dir. playerCommand is split on
// whitespace; the clip path is appended as the last argument.
func NewSink(dir, playerCommand string, logger *slog.Logger) *Sink {
	return &Sink{
		dir:    dir,
		player: strings.Fields(playerCommand),
		now:    time.Now,
		run:    runCommand,
		log:    logger.With("adapter", "speech_sink"),
	}
}

// Save writes the clip and plays it when a player is configured.
// It returns the path of the written file.
func (s *Sink) Save(ctx context.Context, a *domain.Clip) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("speech: create output dir: %w", err)
	}

	name := fmt.Sprintf("%s-%d%s", slug(a.Text), s.now().UnixNano(), extension(a.ContentType))
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, a.Data, 0o644); err != nil {
		return "", fmt.Errorf("speech: write clip: %w", err)
	}
	s.log.DebugContext(ctx, "clip saved", slog.String("path", path), slog.Int("bytes", len(a.Data)))

	if len(s.player) == 0 {
		return path, nil
	}

	args := append(append([]string{}, s.player[1:]...), path)
	if err := s.run(ctx, s.player[0], args...); err != nil {
		return path, fmt.Errorf("speech: play clip: %w", err)
	}
	return path, nil
}

func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

func extension(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ".bin"
	}
	switch mt {
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/wav", "audio/x-wav", "audio/wave":
		return ".wav"
	case "audio/ogg":
		return ".ogg"
	case "audio/webm":
		return ".webm"
	}
	return ".bin"
}

func slug(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		case b.Len() > 0 && !strings.HasSuffix(b.String(), "_"):
			b.WriteByte('_')
		}
		if b.Len() >= 48 {
			break
		}
	}
	s := strings.Trim(b.String(), "_")
	if s == "" {
		return "clip"
	}
	return s
}
