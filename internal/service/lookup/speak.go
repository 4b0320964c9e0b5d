package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/wordtree/internal/display"
	"github.com/heartmarshall/wordtree/internal/domain"
	"github.com/heartmarshall/wordtree/internal/render"
)

// ErrNoSpeaker is returned by Speak when the service has no speech client.
var ErrNoSpeaker = errors.New("lookup: speech is not available")

func speakOnClick(ev *display.Event, el *render.Element) {
	ev.Emit(SpeakRequest{Text: el.Text})
}

// Click dispatches a click on a region element and returns the speak
// requests it produced.
func (s *Service) Click(ctx context.Context, id string) ([]SpeakRequest, error) {
	emitted, err := s.region.Click(id)
	if err != nil {
		s.log.DebugContext(ctx, "click ignored", slog.String("id", id), slog.String("error", err.Error()))
		return nil, err
	}
	s.metrics.Click(targetClass(id))

	var out []SpeakRequest
	for _, v := range emitted {
		if req, ok := v.(SpeakRequest); ok {
			out = append(out, req)
		}
	}
	return out, nil
}

// Speak synthesizes text verbatim and hands the clip to the sink. It
// returns where the clip was stored, empty when there is no sink.
func (s *Service) Speak(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", domain.NewValidationError("text", "required")
	}
	if s.speaker == nil {
		return "", ErrNoSpeaker
	}

	clip, err := s.speaker.Synthesize(ctx, text)
	if err != nil {
		s.log.WarnContext(ctx, "speech failed", slog.String("text", text), slog.String("error", err.Error()))
		return "", fmt.Errorf("speak: %w", err)
	}
	if s.sink == nil {
		return "", nil
	}

	path, err := s.sink.Save(ctx, clip)
	if err != nil {
		return path, fmt.Errorf("speak: %w", err)
	}
	s.log.InfoContext(ctx, "word spoken", slog.String("text", text), slog.String("path", path))
	return path, nil
}

// targetClass names the kind of element an id belongs to, for metrics.
func targetClass(id string) string {
	switch {
	case id == render.ToggleID(render.SectionID(domain.RoleParent)),
		id == render.ToggleID(render.SectionID(domain.RoleChild)):
		return render.ClassSectionToggler
	case strings.HasSuffix(id, ":toggle"):
		return render.ClassToggler
	case strings.HasSuffix(id, ":word"):
		return render.ClassWord
	}
	return "other"
}
