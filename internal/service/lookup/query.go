package lookup

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/wordtree/internal/domain"
	"github.com/heartmarshall/wordtree/internal/render"
	"github.com/heartmarshall/wordtree/pkg/ctxutil"
)

// Lookup queries a word and renders the result into the region: the root
// header followed by the parent and child sections. Only a validation
// failure is returned as an error; every other failure becomes a region
// message.
func (s *Service) Lookup(ctx context.Context, input LookupInput) (Result, error) {
	if err := input.Validate(); err != nil {
		return Result{}, err
	}
	ctx, reqID := ctxutil.EnsureRequestID(ctx)
	word := input.Word
	t := s.ticket()

	start := time.Now()
	res, err := s.store.QueryWord(ctx, word)
	elapsed := time.Since(start)

	var (
		out   Result
		elems []*render.Element
	)
	switch {
	case err != nil && errors.Is(err, domain.ErrMalformedResponse):
		out = Result{Outcome: OutcomeMalformed, Message: MsgParseFailed + parseReason(err)}
		elems = []*render.Element{render.Message(render.MessageError, out.Message)}
	case err != nil:
		out = Result{Outcome: OutcomeFailed, Message: MsgQueryFailed}
		elems = []*render.Element{render.Message(render.MessageError, out.Message)}
	case res == nil || res.NotFound || res.Node == nil:
		msg := MsgWordNotFound
		if res != nil && res.Message != "" {
			msg = res.Message
		}
		out = Result{Outcome: OutcomeNotFound, Message: msg}
		elems = []*render.Element{render.Message(render.MessageInfo, msg)}
	default:
		out = Result{Outcome: OutcomeFound, Node: res.Node}
		elems = render.BuildResult(*res.Node)
	}
	out.Ticket = t

	if !s.commit(ctx, t, "lookup", elems...) {
		out.Outcome = OutcomeStale
	}
	s.metrics.Operation("lookup", string(out.Outcome), elapsed)

	attrs := []any{
		slog.String("word", word),
		slog.String("outcome", string(out.Outcome)),
		slog.Uint64("ticket", t),
		slog.String("request_id", reqID),
		slog.Duration("elapsed", elapsed),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.log.WarnContext(ctx, "lookup failed", attrs...)
	} else {
		s.log.InfoContext(ctx, "word looked up", attrs...)
	}

	return out, nil
}

// parseReason strips the wrapping prefixes so only the decoder's own
// message is shown.
func parseReason(err error) string {
	msg := err.Error()
	marker := domain.ErrMalformedResponse.Error() + ": "
	if i := strings.Index(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
