package workspace

import "github.com/1broseidon/frametile/internal/frame"

// Dump returns the canonical layout text of the tag. An empty name means the
// focused tag.
func (m *Manager) Dump(tagName string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, err := m.resolveLocked(tagName)
	if err != nil {
		return "", err
	}
	return frame.Serialize(t.root), nil
}
