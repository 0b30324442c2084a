package perception

import "github.com/milk9111/otterblade/common"

// DefaultMemorySpan is how long a record survives without being refreshed.
const DefaultMemorySpan = 3.0

// Record is one remembered sighting of an entity.
type Record struct {
	Entity       string
	LastPosition common.Vec2
	// Elapsed is the time in seconds since the entity was last sensed.
	Elapsed      float64
	TimesSpotted int
	Threat       float64
}

// Memory holds time-decayed sighting records for one perceiving agent.
type Memory struct {
	Span    float64
	records []Record
}

func NewMemory(span float64) *Memory {
	if span <= 0 {
		span = DefaultMemorySpan
	}
	return &Memory{Span: span}
}

// Remember refreshes the record for entity, or creates one with a neutral
// threat when the entity has not been seen before.
func (m *Memory) Remember(entity string, pos common.Vec2) {
	for i := range m.records {
		if m.records[i].Entity != entity {
			continue
		}
		m.records[i].LastPosition = pos
		m.records[i].Elapsed = 0
		m.records[i].TimesSpotted++
		return
	}
	m.records = append(m.records, Record{
		Entity:       entity,
		LastPosition: pos,
		TimesSpotted: 1,
		Threat:       0.5,
	})
}

// Get returns the record for entity, if any.
func (m *Memory) Get(entity string) (Record, bool) {
	for i := range m.records {
		if m.records[i].Entity == entity {
			return m.records[i], true
		}
	}
	return Record{}, false
}

// SetThreat overwrites the threat value on an existing record.
func (m *Memory) SetThreat(entity string, threat float64) {
	for i := range m.records {
		if m.records[i].Entity == entity {
			m.records[i].Threat = threat
			return
		}
	}
}

// Update ages every record by delta seconds and drops the ones that have
// gone unrefreshed past the memory span.
func (m *Memory) Update(delta float64) {
	kept := m.records[:0]
	for i := range m.records {
		m.records[i].Elapsed += delta
		if m.records[i].Elapsed < m.Span {
			kept = append(kept, m.records[i])
		}
	}
	m.records = kept
}

// MostThreatening returns the record maximizing threat weighted by
// recency, threat / (1 + elapsed). Returns false when memory is empty.
func (m *Memory) MostThreatening() (Record, bool) {
	if len(m.records) == 0 {
		return Record{}, false
	}
	best := 0
	bestScore := m.records[0].Threat / (1 + m.records[0].Elapsed)
	for i := 1; i < len(m.records); i++ {
		score := m.records[i].Threat / (1 + m.records[i].Elapsed)
		if score > bestScore {
			best = i
			bestScore = score
		}
	}
	return m.records[best], true
}

// Clear drops every record.
func (m *Memory) Clear() {
	m.records = m.records[:0]
}

// Len returns the number of live records.
func (m *Memory) Len() int {
	return len(m.records)
}
