package i18n

import (
	"sync"

	"github.com/facildate/taskboard/internal/storage"
)

// LanguageStore holds the observable language preference, persisted
// under the "language" key on every change.
type LanguageStore struct {
	mu      sync.Mutex
	lang    string
	backend storage.Backend
	subs    map[int]func(string)
	nextID  int
}

// NewLanguageStore creates a language store initialized from persisted
// storage, defaulting to English.
func NewLanguageStore(backend storage.Backend) *LanguageStore {
	lang := DefaultLanguage
	if stored, err := backend.Get(storage.KeyLanguage); err == nil && stored != "" {
		lang = stored
	}

	return &LanguageStore{
		lang:    lang,
		backend: backend,
		subs:    make(map[int]func(string)),
	}
}

// Current returns the selected language code.
func (s *LanguageStore) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang
}

// Subscribe registers fn as an observer, invoked immediately with the
// current language and again on every change. The returned func
// unregisters the observer.
func (s *LanguageStore) Subscribe(fn func(string)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	lang := s.lang
	s.mu.Unlock()

	fn(lang)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Set selects a language, persists the choice, and notifies subscribers.
func (s *LanguageStore) Set(lang string) {
	s.mu.Lock()
	s.lang = lang
	subs := make([]func(string), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	_ = s.backend.Set(storage.KeyLanguage, lang)

	for _, fn := range subs {
		fn(lang)
	}
}
