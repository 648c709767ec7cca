package voting

import "sync"

// Manager hands out one Flow per authenticated user. Flows live for the
// day's voting session; Drop discards a finished or abandoned flow so the
// next visit starts back at COMPOSING.
type Manager struct {
	mu    sync.Mutex
	flows map[int64]*Flow
	cfg   FlowConfig
}

// NewManager creates a flow manager with shared collaborators.
func NewManager(cfg FlowConfig) *Manager {
	return &Manager{
		flows: make(map[int64]*Flow),
		cfg:   cfg,
	}
}

// Flow returns the user's current flow, creating one in COMPOSING if none
// exists. The token is refreshed on every call so a re-login mid-flow keeps
// the flow usable.
func (m *Manager) Flow(fid int64, token string) *Flow {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.flows[fid]
	if !ok {
		f = NewFlow(fid, token, m.cfg)
		m.flows[fid] = f
		return f
	}
	f.mu.Lock()
	f.token = token
	f.mu.Unlock()
	return f
}

// Peek returns the user's flow without creating one.
func (m *Manager) Peek(fid int64) (*Flow, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.flows[fid]
	return f, ok
}

// Drop discards the user's flow.
func (m *Manager) Drop(fid int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.flows, fid)
}
