package memory

import "github.com/Harshitk-cp/nars/internal/domain"

// Lookup returns the concept for term without creating it.
func (m *Memory) Lookup(term domain.Term) (*Concept, bool) {
	id, ok := m.byTerm[term.Key()]
	if !ok {
		return nil, false
	}
	return m.concepts[id], true
}

// PeekConcept returns the concept for term, creating it and the concepts of
// all its components (bottom-up) when missing. It never fails.
func (m *Memory) PeekConcept(term domain.Term) *Concept {
	if c, ok := m.Lookup(term); ok {
		return c
	}

	subs := term.SubTerms()
	subIDs := make([]uint64, 0, len(subs))
	for _, sub := range subs {
		subIDs = append(subIDs, m.PeekConcept(sub).id)
	}

	m.ids++
	c := newConcept(m.ids, term, m.tableCapacity)
	for _, id := range subIDs {
		sub, ok := m.concepts[id]
		if !ok {
			// evicted while siblings were being created
			continue
		}
		c.subTerms = append(c.subTerms, id)
		sub.addSuperTerm(c.id)
	}
	for _, id := range m.orphans[term.Key()] {
		if super, ok := m.concepts[id]; ok {
			c.addSuperTerm(id)
			super.subTerms = append(super.subTerms, c.id)
		}
	}
	delete(m.orphans, term.Key())

	m.concepts[c.id] = c
	m.byTerm[term.Key()] = c.id
	m.bag.PutNew(c)
	return c
}

// GetSemanticallyRelatedConcept samples, within the attempt budget, a concept
// other than c that shares a component with c. Candidates are accepted with
// probability equal to their priority.
func (m *Memory) GetSemanticallyRelatedConcept(c *Concept) (*Concept, bool) {
	for attempt := 0; attempt < m.relatedAttempts; attempt++ {
		candidate, ok := m.sampleNeighbour(c)
		if !ok {
			continue
		}
		priority := 0.5
		if it, ok := m.bag.Peek(candidate.id); ok {
			priority = it.Budget.Priority
		}
		if m.rng.Float64() < priority {
			return candidate, true
		}
	}
	return nil, false
}

// sampleNeighbour picks a random component of c, then a random other
// statement built on that component. Atomic concepts fall back to their own
// super-terms.
func (m *Memory) sampleNeighbour(c *Concept) (*Concept, bool) {
	pool := c.superTerms
	if len(c.subTerms) > 0 {
		sub, ok := m.concepts[c.subTerms[m.rng.IntN(len(c.subTerms))]]
		if !ok {
			return nil, false
		}
		pool = sub.superTerms
	}
	if len(pool) == 0 {
		return nil, false
	}
	id := pool[m.rng.IntN(len(pool))]
	if id == c.id {
		return nil, false
	}
	candidate, ok := m.concepts[id]
	return candidate, ok
}

// forget removes an evicted concept from the arena and unlinks it.
func (m *Memory) forget(c *Concept) {
	for _, id := range c.subTerms {
		if sub, ok := m.concepts[id]; ok {
			sub.superTerms = removeID(sub.superTerms, c.id)
		}
	}
	key := c.term.Key()
	for _, id := range c.superTerms {
		if super, ok := m.concepts[id]; ok {
			super.subTerms = removeID(super.subTerms, c.id)
			m.orphans[key] = append(m.orphans[key], id)
		}
	}
	for _, sub := range c.term.SubTerms() {
		subKey := sub.Key()
		if waiting, ok := m.orphans[subKey]; ok {
			if waiting = removeID(waiting, c.id); len(waiting) == 0 {
				delete(m.orphans, subKey)
			} else {
				m.orphans[subKey] = waiting
			}
		}
	}
	delete(m.concepts, c.id)
	delete(m.byTerm, key)
}
