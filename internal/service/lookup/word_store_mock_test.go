package lookup

import (
	"context"
	"sync"

	"github.com/heartmarshall/wordtree/internal/domain"
)

var _ wordStore = &wordStoreMock{}

type wordStoreMock struct {
	AddWordFunc    func(ctx context.Context, word, meaning string) error
	UpdateWordFunc func(ctx context.Context, word, meaning string) error
	QueryWordFunc  func(ctx context.Context, word string) (*domain.QueryResult, error)

	calls struct {
		AddWord []struct {
			Ctx     context.Context
			Word    string
			Meaning string
		}
		UpdateWord []struct {
			Ctx     context.Context
			Word    string
			Meaning string
		}
		QueryWord []struct {
			Ctx  context.Context
			Word string
		}
	}
	lockAddWord    sync.RWMutex
	lockUpdateWord sync.RWMutex
	lockQueryWord  sync.RWMutex
}

func (mock *wordStoreMock) AddWord(ctx context.Context, word, meaning string) error {
	if mock.AddWordFunc == nil {
		panic("wordStoreMock.AddWordFunc: method is nil but wordStore.AddWord was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Word    string
		Meaning string
	}{Ctx: ctx, Word: word, Meaning: meaning}
	mock.lockAddWord.Lock()
	mock.calls.AddWord = append(mock.calls.AddWord, callInfo)
	mock.lockAddWord.Unlock()
	return mock.AddWordFunc(ctx, word, meaning)
}

func (mock *wordStoreMock) AddWordCalls() []struct {
	Ctx     context.Context
	Word    string
	Meaning string
} {
	mock.lockAddWord.RLock()
	calls := mock.calls.AddWord
	mock.lockAddWord.RUnlock()
	return calls
}

func (mock *wordStoreMock) UpdateWord(ctx context.Context, word, meaning string) error {
	if mock.UpdateWordFunc == nil {
		panic("wordStoreMock.UpdateWordFunc: method is nil but wordStore.UpdateWord was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Word    string
		Meaning string
	}{Ctx: ctx, Word: word, Meaning: meaning}
	mock.lockUpdateWord.Lock()
	mock.calls.UpdateWord = append(mock.calls.UpdateWord, callInfo)
	mock.lockUpdateWord.Unlock()
	return mock.UpdateWordFunc(ctx, word, meaning)
}

func (mock *wordStoreMock) UpdateWordCalls() []struct {
	Ctx     context.Context
	Word    string
	Meaning string
} {
	mock.lockUpdateWord.RLock()
	calls := mock.calls.UpdateWord
	mock.lockUpdateWord.RUnlock()
	return calls
}

func (mock *wordStoreMock) QueryWord(ctx context.Context, word string) (*domain.QueryResult, error) {
	if mock.QueryWordFunc == nil {
		panic("wordStoreMock.QueryWordFunc: method is nil but wordStore.QueryWord was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Word string
	}{Ctx: ctx, Word: word}
	mock.lockQueryWord.Lock()
	mock.calls.QueryWord = append(mock.calls.QueryWord, callInfo)
	mock.lockQueryWord.Unlock()
	return mock.QueryWordFunc(ctx, word)
}

func (mock *wordStoreMock) QueryWordCalls() []struct {
	Ctx  context.Context
	Word string
} {
	mock.lockQueryWord.RLock()
	calls := mock.calls.QueryWord
	mock.lockQueryWord.RUnlock()
	return calls
}
