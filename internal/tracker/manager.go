package tracker

import "sync"

// Manager hands out one Page per authenticated principal, creating it
// lazily on first use. Pages live for the process lifetime.
type Manager struct {
	mu      sync.Mutex
	pages   map[int64]*Page
	newPage func() *Page
}

func NewManager(newPage func() *Page) *Manager {
	return &Manager{pages: make(map[int64]*Page), newPage: newPage}
}

// PageFor returns the page owned by the given user, creating it if needed.
func (m *Manager) PageFor(userID int64) *Page {
	m.mu.Lock()
	defer m.mu.Unlock()

	page, ok := m.pages[userID]
	if !ok {
		page = m.newPage()
		m.pages[userID] = page
	}
	return page
}
