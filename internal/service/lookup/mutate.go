package lookup

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/wordtree/internal/render"
	"github.com/heartmarshall/wordtree/pkg/ctxutil"
)

// Add stores a new word/meaning pair and reports the outcome in the region.
func (s *Service) Add(ctx context.Context, input WordInput) (Result, error) {
	return s.mutate(ctx, "add", input, s.store.AddWord, MsgAdded, MsgAddFailed)
}

// Update replaces the meaning of an existing word and reports the outcome
// in the region.
func (s *Service) Update(ctx context.Context, input WordInput) (Result, error) {
	return s.mutate(ctx, "update", input, s.store.UpdateWord, MsgUpdated, MsgUpdateFailed)
}

func (s *Service) mutate(
	ctx context.Context,
	op string,
	input WordInput,
	call func(ctx context.Context, word, meaning string) error,
	okMsg, failMsg string,
) (Result, error) {
	if err := input.Validate(); err != nil {
		return Result{}, err
	}
	ctx, reqID := ctxutil.EnsureRequestID(ctx)
	word, meaning := input.Word, input.Meaning
	t := s.ticket()

	start := time.Now()
	err := call(ctx, word, meaning)
	elapsed := time.Since(start)

	out := Result{Outcome: OutcomeSaved, Message: okMsg, Ticket: t}
	kind := render.MessageSuccess
	if err != nil {
		out.Outcome, out.Message = OutcomeFailed, failMsg
		kind = render.MessageError
	}

	if !s.commit(ctx, t, op, render.Message(kind, out.Message)) {
		out.Outcome = OutcomeStale
	}
	s.metrics.Operation(op, string(out.Outcome), elapsed)

	if err != nil {
		s.log.WarnContext(ctx, "word "+op+" failed",
			slog.String("word", word),
			slog.String("request_id", reqID),
			slog.String("error", err.Error()),
		)
	} else {
		s.log.InfoContext(ctx, "word "+op+" done",
			slog.String("word", word),
			slog.String("outcome", string(out.Outcome)),
			slog.String("request_id", reqID),
		)
	}
	return out, nil
}
