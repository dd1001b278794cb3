package session

// SectionMap maps an output section name to its input-section patterns,
// remembering the order in which names first appeared.
type SectionMap struct {
	names    []string
	patterns map[string][]string
}

func NewSectionMap() *SectionMap {
	return &SectionMap{patterns: make(map[string][]string)}
}

// Ensure creates an empty entry for name if there is none yet.
func (m *SectionMap) Ensure(name string) {
	if _, ok := m.patterns[name]; ok {
		return
	}
	m.names = append(m.names, name)
	m.patterns[name] = []string{}
}

// Append adds patterns to name's list. A repeated name extends the
// existing list, it never replaces it.
func (m *SectionMap) Append(name string, patterns ...string) {
	m.Ensure(name)
	m.patterns[name] = append(m.patterns[name], patterns...)
}

// Get returns the patterns registered for name.
func (m *SectionMap) Get(name string) ([]string, bool) {
	p, ok := m.patterns[name]
	return p, ok
}

// Names returns section names in first-appearance order.
func (m *SectionMap) Names() []string {
	return m.names
}

func (m *SectionMap) Len() int {
	return len(m.names)
}
