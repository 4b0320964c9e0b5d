package lookup

import (
	"context"
	"sync"

	"github.com/heartmarshall/wordtree/internal/domain"
)

var (
	_ speaker  = &speakerMock{}
	_ clipSink = &clipSinkMock{}
)

type speakerMock struct {
	SynthesizeFunc func(ctx context.Context, text string) (*domain.Clip, error)

	calls struct {
		Synthesize []struct {
			Ctx  context.Context
			Text string
		}
	}
	lockSynthesize sync.RWMutex
}

func (mock *speakerMock) Synthesize(ctx context.Context, text string) (*domain.Clip, error) {
	if mock.SynthesizeFunc == nil {
		panic("speakerMock.SynthesizeFunc: method is nil but speaker.Synthesize was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Text string
	}{Ctx: ctx, Text: text}
	mock.lockSynthesize.Lock()
	mock.calls.Synthesize = append(mock.calls.Synthesize, callInfo)
	mock.lockSynthesize.Unlock()
	return mock.SynthesizeFunc(ctx, text)
}

func (mock *speakerMock) SynthesizeCalls() []struct {
	Ctx  context.Context
	Text string
} {
	mock.lockSynthesize.RLock()
	calls := mock.calls.Synthesize
	mock.lockSynthesize.RUnlock()
	return calls
}

type clipSinkMock struct {
	SaveFunc func(ctx context.Context, c *domain.Clip) (string, error)

	calls struct {
		Save []struct {
			Ctx  context.Context
			Clip *domain.Clip
		}
	}
	lockSave sync.RWMutex
}

func (mock *clipSinkMock) Save(ctx context.Context, c *domain.Clip) (string, error) {
	if mock.SaveFunc == nil {
		panic("clipSinkMock.SaveFunc: method is nil but clipSink.Save was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Clip *domain.Clip
	}{Ctx: ctx, Clip: c}
	mock.lockSave.Lock()
	mock.calls.Save = append(mock.calls.Save, callInfo)
	mock.lockSave.Unlock()
	return mock.SaveFunc(ctx, c)
}

func (mock *clipSinkMock) SaveCalls() []struct {
	Ctx  context.Context
	Clip *domain.Clip
} {
	mock.lockSave.RLock()
	calls := mock.calls.Save
	mock.lockSave.RUnlock()
	return calls
}
