package feed

import (
	"sync"

	"welile-backend/internal/domain"
)

// Session accumulates fetched pages for one viewer. It is the client-side
// half of the feed: consumers fetching pages over HTTP (and refetching on
// change-stream signals) hold one Session per open feed view, while the
// server stays stateless. It is session-scoped state passed in explicitly;
// nothing recipient-specific lives in a package global. Pages are keyed by
// index, so a late page landing out of order slots into place instead of
// corrupting the list.
type Session struct {
	mu       sync.Mutex
	pageSize int
	epoch    uint64
	pages    map[int][]domain.Notification
}

func NewSession(pageSize int) *Session {
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}
	return &Session{
		pageSize: pageSize,
		pages:    map[int][]domain.Notification{},
	}
}

func (s *Session) PageSize() int {
	return s.pageSize
}

// Begin returns a token identifying the current accumulation epoch. Responses
// carrying a stale token are superseded and must be dropped.
func (s *Session) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// Reset abandons accumulated pages and invalidates in-flight fetches.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.pages = map[int][]domain.Notification{}
}

// Store records a fetched page. It reports false when the token is stale, in
// which case the page is discarded.
func (s *Session) Store(token uint64, page int, items []domain.Notification) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.epoch || page < 1 {
		return false
	}
	s.pages[page] = items
	return true
}

// Snapshot flattens stored pages in page order. Gaps end the snapshot: a
// missing page never produces a list with holes.
func (s *Session) Snapshot() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Notification
	for page := 1; ; page++ {
		items, ok := s.pages[page]
		if !ok {
			break
		}
		out = append(out, items...)
	}
	return out
}

// HasMore reports whether the highest contiguous page was full, meaning a
// further fetch may return data.
func (s *Session) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	last := 0
	for page := 1; ; page++ {
		if _, ok := s.pages[page]; !ok {
			break
		}
		last = page
	}
	if last == 0 {
		return true
	}
	return len(s.pages[last]) == s.pageSize
}
