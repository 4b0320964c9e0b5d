package lookup

//go:generate moq -out word_store_mock_test.go -pkg lookup . wordStore
//go:generate moq -out speaker_mock_test.go -pkg lookup . speaker clipSink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/heartmarshall/wordtree/internal/collapse"
	"github.com/heartmarshall/wordtree/internal/display"
	"github.com/heartmarshall/wordtree/internal/domain"
	"github.com/heartmarshall/wordtree/internal/render"
	"github.com/heartmarshall/wordtree/pkg/ctxutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, store *wordStoreMock) *Service {
	t.Helper()
	log := newTestLogger()
	return NewService(log, store, display.NewRegion(), collapse.New(log), nil, nil, nil)
}

func regionText(t *testing.T, s *Service, all bool) string {
	t.Helper()
	var b strings.Builder
	s.Region().View(func(elems []*render.Element) {
		require.NoError(t, render.WriteText(&b, elems, render.TextOptions{All: all}))
	})
	return b.String()
}

func catResult() *domain.QueryResult {
	return &domain.QueryResult{Node: &domain.WordNode{
		Word:        "cat",
		Translation: "a feline",
		Parents: []domain.WordNode{
			{Word: "animal", Translation: "living being", Parents: []domain.WordNode{}, Children: []domain.WordNode{}},
		},
		Children: []domain.WordNode{},
	}}
}

// ---------------------------------------------------------------------------
// Lookup
// ---------------------------------------------------------------------------

func TestLookup_CatScenario(t *testing.T) {
	t.Parallel()

	store := &wordStoreMock{
		QueryWordFunc: func(_ context.Context, word string) (*domain.QueryResult, error) {
			assert.Equal(t, "cat", word)
			return catResult(), nil
		},
	}
	svc := newTestService(t, store)

	res, err := svc.Lookup(context.Background(), LookupInput{Word: "cat"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeFound, res.Outcome)
	assert.Empty(t, res.Message)
	require.NotNil(t, res.Node)
	assert.Equal(t, "cat", res.Node.Word)
	assert.Equal(t, uint64(1), svc.Region().Generation(), "region cleared exactly once")

	assert.Equal(t, "cat: a feline\n[+] Parents\n", regionText(t, svc, false))
	assert.Equal(t, "cat: a feline\n[+] Parents\n"+render.GlyphLeaf+" animal: living being\n", regionText(t, svc, true))
}

func TestLookup_SendsWordVerbatim(t *testing.T) {
	t.Parallel()

	store := &wordStoreMock{
		QueryWordFunc: func(_ context.Context, word string) (*domain.QueryResult, error) {
			return &domain.QueryResult{NotFound: true}, nil
		},
	}
	svc := newTestService(t, store)

	_, err := svc.Lookup(context.Background(), LookupInput{Word: "  ice cream "})
	require.NoError(t, err)
	require.Len(t, store.QueryWordCalls(), 1)
	assert.Equal(t, "  ice cream ", store.QueryWordCalls()[0].Word)
}

func TestLookup_EmptyInputMakesNoCall(t *testing.T) {
	t.Parallel()

	for _, word := range []string{"", "   ", "\t\n"} {
		store := &wordStoreMock{}
		svc := newTestService(t, store)

		_, err := svc.Lookup(context.Background(), LookupInput{Word: word})
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, PromptLookup, domain.UserPrompt(err))
		assert.Empty(t, store.QueryWordCalls())
		assert.Equal(t, uint64(0), svc.Region().Generation(), "region untouched")
	}
}

func TestLookup_NotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		res  *domain.QueryResult
		want string
	}{
		{"backend message", &domain.QueryResult{NotFound: true, Message: "not found"}, "not found"},
		{"no message", &domain.QueryResult{NotFound: true}, MsgWordNotFound},
		{"nil node", &domain.QueryResult{}, MsgWordNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newTestService(t, &wordStoreMock{
				QueryWordFunc: func(context.Context, string) (*domain.QueryResult, error) { return tt.res, nil },
			})

			res, err := svc.Lookup(context.Background(), LookupInput{Word: "xyz"})
			require.NoError(t, err)
			assert.Equal(t, OutcomeNotFound, res.Outcome)
			assert.Equal(t, tt.want, res.Message)

			svc.Region().View(func(elems []*render.Element) {
				require.Len(t, elems, 1, "no tree markup")
				assert.True(t, elems[0].HasClass(render.ClassMessage))
				assert.True(t, elems[0].HasClass(string(render.MessageInfo)))
				assert.Equal(t, tt.want, elems[0].Text)
			})
		})
	}
}

func TestLookup_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		wantOutcome Outcome
		wantMsg     string
	}{
		{
			name:        "server failure",
			err:         fmt.Errorf("wordapi: query: %w: unexpected status 500", domain.ErrUnavailable),
			wantOutcome: OutcomeFailed,
			wantMsg:     MsgQueryFailed,
		},
		{
			name:        "malformed body",
			err:         fmt.Errorf("wordapi: query: %w: $.children[0]: missing word field", domain.ErrMalformedResponse),
			wantOutcome: OutcomeMalformed,
			wantMsg:     "Failed to parse response: $.children[0]: missing word field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newTestService(t, &wordStoreMock{
				QueryWordFunc: func(context.Context, string) (*domain.QueryResult, error) { return nil, tt.err },
			})

			res, err := svc.Lookup(context.Background(), LookupInput{Word: "cat"})
			require.NoError(t, err, "failures never propagate past the region")
			assert.Equal(t, tt.wantOutcome, res.Outcome)
			assert.Equal(t, tt.wantMsg, res.Message)

			svc.Region().View(func(elems []*render.Element) {
				require.Len(t, elems, 1, "never a partial tree")
				assert.True(t, elems[0].HasClass(string(render.MessageError)))
				assert.Equal(t, tt.wantMsg, elems[0].Text)
			})
		})
	}
}

func TestLookup_ForwardsRequestID(t *testing.T) {
	t.Parallel()

	store := &wordStoreMock{
		QueryWordFunc: func(context.Context, string) (*domain.QueryResult, error) { return catResult(), nil },
	}
	svc := newTestService(t, store)

	_, err := svc.Lookup(context.Background(), LookupInput{Word: "cat"})
	require.NoError(t, err)
	assert.NotEmpty(t, ctxutil.RequestIDFromCtx(store.QueryWordCalls()[0].Ctx))

	ctx := ctxutil.WithRequestID(context.Background(), "req-9")
	_, err = svc.Lookup(ctx, LookupInput{Word: "cat"})
	require.NoError(t, err)
	assert.Equal(t, "req-9", ctxutil.RequestIDFromCtx(store.QueryWordCalls()[1].Ctx))
}

func TestLookup_StaleResponseIsDiscarded(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	started := make(chan struct{})
	store := &wordStoreMock{
		QueryWordFunc: func(_ context.Context, word string) (*domain.QueryResult, error) {
			if word == "slow" {
				close(started)
				<-release
				return &domain.QueryResult{Node: &domain.WordNode{Word: "slow", Translation: "late"}}, nil
			}
			return &domain.QueryResult{Node: &domain.WordNode{Word: "fast", Translation: "early"}}, nil
		},
	}
	svc := newTestService(t, store)

	done := make(chan Result)
	go func() {
		res, _ := svc.Lookup(context.Background(), LookupInput{Word: "slow"})
		done <- res
	}()
	<-started

	fast, err := svc.Lookup(context.Background(), LookupInput{Word: "fast"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeFound, fast.Outcome)

	close(release)
	slow := <-done
	assert.Equal(t, OutcomeStale, slow.Outcome)
	assert.False(t, slow.Rendered())
	assert.Less(t, slow.Ticket, fast.Ticket)

	assert.Equal(t, "fast: early\n", regionText(t, svc, true))
	assert.Equal(t, uint64(1), svc.Region().Generation())
}

func TestLookup_RebindDoesNotAccumulate(t *testing.T) {
	t.Parallel()

	store := &wordStoreMock{
		QueryWordFunc: func(context.Context, string) (*domain.QueryResult, error) {
			return &domain.QueryResult{Node: &domain.WordNode{
				Word:     "act",
				Children: []domain.WordNode{{Word: "action", Children: []domain.WordNode{{Word: "actions"}}}},
			}}, nil
		},
	}
	svc := newTestService(t, store)

	for range 4 {
		_, err := svc.Lookup(context.Background(), LookupInput{Word: "act"})
		require.NoError(t, err)
	}

	r := svc.Region()
	assert.Equal(t, 1, r.HandlerCount(render.ClassToggler))
	assert.Equal(t, 1, r.HandlerCount(render.ClassSectionToggler))
	assert.Equal(t, 1, r.HandlerCount(render.ClassWord))

	// A single click flips the node exactly once.
	_, err := svc.Click(context.Background(), "children/0:toggle")
	require.NoError(t, err)
	r.View(func(elems []*render.Element) {
		node := elems[1].FindAll(render.ClassTreeNode)[0]
		assert.False(t, node.HasClass(render.ClassCollapsed))
	})
}

// ---------------------------------------------------------------------------
// Add / Update
// ---------------------------------------------------------------------------

func TestAdd_Success(t *testing.T) {
	t.Parallel()

	store := &wordStoreMock{
		AddWordFunc: func(context.Context, string, string) error { return nil },
	}
	svc := newTestService(t, store)

	res, err := svc.Add(context.Background(), WordInput{Word: " cat ", Meaning: " a feline "})
	require.NoError(t, err)
	assert.Equal(t, OutcomeSaved, res.Outcome)
	assert.Equal(t, MsgAdded, res.Message)

	require.Len(t, store.AddWordCalls(), 1)
	assert.Equal(t, " cat ", store.AddWordCalls()[0].Word)
	assert.Equal(t, " a feline ", store.AddWordCalls()[0].Meaning)
	assert.Equal(t, MsgAdded+"\n", regionText(t, svc, false))
}

func TestAdd_EmptyMeaningMakesNoCall(t *testing.T) {
	t.Parallel()

	store := &wordStoreMock{}
	svc := newTestService(t, store)

	_, err := svc.Add(context.Background(), WordInput{Word: "cat", Meaning: ""})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, PromptWordAndDef, domain.UserPrompt(err))
	assert.Empty(t, store.AddWordCalls())
	assert.Equal(t, uint64(0), svc.Region().Generation())
}

func TestMutations_Failure(t *testing.T) {
	t.Parallel()

	fail := func(context.Context, string, string) error { return domain.ErrUnavailable }
	store := &wordStoreMock{AddWordFunc: fail, UpdateWordFunc: fail}
	svc := newTestService(t, store)

	res, err := svc.Add(context.Background(), WordInput{Word: "cat", Meaning: "x"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.Equal(t, MsgAddFailed+"\n", regionText(t, svc, false))

	res, err = svc.Update(context.Background(), WordInput{Word: "cat", Meaning: "x"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.Equal(t, MsgUpdateFailed+"\n", regionText(t, svc, false))
}

func TestUpdate_Success(t *testing.T) {
	t.Parallel()

	store := &wordStoreMock{
		UpdateWordFunc: func(context.Context, string, string) error { return nil },
	}
	svc := newTestService(t, store)

	res, err := svc.Update(context.Background(), WordInput{Word: "cat", Meaning: "a small feline"})
	require.NoError(t, err)
	assert.Equal(t, MsgUpdated, res.Message)
	require.Len(t, store.UpdateWordCalls(), 1)
	assert.Equal(t, "a small feline", store.UpdateWordCalls()[0].Meaning)
}

func TestWordInput_Validate(t *testing.T) {
	t.Parallel()

	err := WordInput{}.Validate()
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Errors, 2)
	assert.NoError(t, WordInput{Word: "a", Meaning: "b"}.Validate())
}

// ---------------------------------------------------------------------------
// Click / Speak
// ---------------------------------------------------------------------------

func TestClick_WordEmitsSpeakRequest(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &wordStoreMock{
		QueryWordFunc: func(context.Context, string) (*domain.QueryResult, error) { return catResult(), nil },
	})
	_, err := svc.Lookup(context.Background(), LookupInput{Word: "cat"})
	require.NoError(t, err)

	reqs, err := svc.Click(context.Background(), render.WordID(render.RootID))
	require.NoError(t, err)
	assert.Equal(t, []SpeakRequest{{Text: "cat"}}, reqs)

	reqs, err = svc.Click(context.Background(), "parents/0:word")
	require.NoError(t, err)
	assert.Equal(t, []SpeakRequest{{Text: "animal"}}, reqs)

	reqs, err = svc.Click(context.Background(), "parents:toggle")
	require.NoError(t, err)
	assert.Empty(t, reqs)
}

func TestClick_UnknownTarget(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &wordStoreMock{})
	_, err := svc.Click(context.Background(), "parents:toggle")
	require.ErrorIs(t, err, display.ErrUnknownTarget)
}

func TestSpeak(t *testing.T) {
	t.Parallel()

	sp := &speakerMock{
		SynthesizeFunc: func(_ context.Context, text string) (*domain.Clip, error) {
			return &domain.Clip{Text: text, Data: []byte("x")}, nil
		},
	}
	sink := &clipSinkMock{
		SaveFunc: func(context.Context, *domain.Clip) (string, error) { return "/tmp/cat.mp3", nil },
	}
	log := newTestLogger()
	svc := NewService(log, &wordStoreMock{}, display.NewRegion(), collapse.New(log), sp, sink, nil)

	path, err := svc.Speak(context.Background(), "Ice Cream")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/cat.mp3", path)
	require.Len(t, sp.SynthesizeCalls(), 1)
	assert.Equal(t, "Ice Cream", sp.SynthesizeCalls()[0].Text, "text is passed verbatim")
	require.Len(t, sink.SaveCalls(), 1)
}

func TestSpeak_Errors(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &wordStoreMock{})
	_, err := svc.Speak(context.Background(), "cat")
	require.ErrorIs(t, err, ErrNoSpeaker)

	_, err = svc.Speak(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrValidation)

	log := newTestLogger()
	sp := &speakerMock{
		SynthesizeFunc: func(context.Context, string) (*domain.Clip, error) { return nil, domain.ErrUnavailable },
	}
	svc = NewService(log, &wordStoreMock{}, display.NewRegion(), collapse.New(log), sp, nil, nil)
	_, err = svc.Speak(context.Background(), "cat")
	require.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestTargetClass(t *testing.T) {
	t.Parallel()

	assert.Equal(t, render.ClassSectionToggler, targetClass("children:toggle"))
	assert.Equal(t, render.ClassToggler, targetClass("children/0:toggle"))
	assert.Equal(t, render.ClassWord, targetClass("root:word"))
	assert.Equal(t, "other", targetClass("root"))
}
