package index

import (
	"sort"
	"strings"
	"sync"

	"github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/Distributed-Search-Analytics-Platform/internal/rank"
)

type MemoryIndex struct {
	mu       sync.RWMutex
	index    map[string]map[string]*Posting
	vectors  map[string]*rank.DocVector
	docCount int
	size     int64
}

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		index:   make(map[string]map[string]*Posting),
		vectors: make(map[string]*rank.DocVector),
	}
}

// AddDocument tokenizes title and body separately, tagging title
// occurrences with the higher weight class, and offsets body positions
// past the title's so cross-field AND distances stay meaningful.
func (m *MemoryIndex) AddDocument(docID string, title string, body string) {
	termData := make(map[string]*Posting)

	titleTokens := tokenizer.Tokenize(title)
	for _, token := range titleTokens {
		addOccurrence(termData, docID, token.Term, uint32(token.Position), ClassTitle)
	}

	bodyOffset := len(titleTokens)
	for _, token := range tokenizer.Tokenize(body) {
		addOccurrence(termData, docID, token.Term, uint32(bodyOffset+token.Position), ClassBody)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for term, posting := range termData {
		if _, exists := m.index[term]; !exists {
			m.index[term] = make(map[string]*Posting)
		}
		m.index[term][docID] = posting
		m.size += int64(len(term) + len(docID) + len(posting.Positions)*8 + 64)
	}
	m.vectors[docID] = buildDocVector(termData)
	m.docCount++
}

func addOccurrence(termData map[string]*Posting, docID, term string, pos uint32, class uint8) {
	p, exists := termData[term]
	if !exists {
		p = &Posting{
			DocID:     docID,
			Frequency: 0,
			Positions: make([]rank.Position, 0, 4),
		}
		termData[term] = p
	}
	p.Frequency++
	p.Positions = append(p.Positions, rank.Position{Pos: pos, Class: class})
}

func buildDocVector(termData map[string]*Posting) *rank.DocVector {
	entries := make([]rank.LexemeEntry, 0, len(termData))
	for term, posting := range termData {
		entries = append(entries, rank.LexemeEntry{Lexeme: term, Positions: posting.Positions})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Lexeme < entries[j].Lexeme })
	return &rank.DocVector{Entries: entries}
}

func (m *MemoryIndex) Search(term string) PostingList {
	m.mu.RLock()
	defer m.mu.RUnlock()
	docs, exists := m.index[term]
	if !exists {
		return nil
	}
	result := make(PostingList, 0, len(docs))
	for _, posting := range docs {
		result = append(result, *posting)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DocID < result[j].DocID
	})
	return result
}

// SearchPrefix unions the postings of every indexed term that begins with
// prefix — the coarse, corpus-wide counterpart to the ranking core's
// FindLexeme prefix run, used by the executor to gather prefix-query
// candidates before per-document scoring narrows them exactly.
func (m *MemoryIndex) SearchPrefix(prefix string) PostingList {
	m.mu.RLock()
	defer m.mu.RUnlock()
	byDoc := make(map[string]*Posting)
	for term, docs := range m.index {
		if !strings.HasPrefix(term, prefix) {
			continue
		}
		for docID, posting := range docs {
			if existing, ok := byDoc[docID]; ok {
				merged := *existing
				merged.Frequency += posting.Frequency
				merged.Positions = append(append([]rank.Position{}, existing.Positions...), posting.Positions...)
				byDoc[docID] = &merged
			} else {
				byDoc[docID] = posting
			}
		}
	}
	result := make(PostingList, 0, len(byDoc))
	for _, posting := range byDoc {
		result = append(result, *posting)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DocID < result[j].DocID
	})
	return result
}

// DocVector returns the per-document lexeme vector the ranking core scores
// against, or nil if docID is unknown.
func (m *MemoryIndex) DocVector(docID string) *rank.DocVector {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.vectors[docID]
}

func (m *MemoryIndex) Snapshot() []TermEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]TermEntry, 0, len(m.index))
	for term, docs := range m.index {
		postings := make(PostingList, 0, len(docs))
		for _, posting := range docs {
			postings = append(postings, *posting)
		}
		sort.Slice(postings, func(i, j int) bool {
			return postings[i].DocID < postings[j].DocID
		})
		entries = append(entries, TermEntry{
			Term:     term,
			Postings: postings,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Term < entries[j].Term
	})
	return entries
}

func (m *MemoryIndex) Size() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.size
}

func (m *MemoryIndex) DocCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.docCount
}

func (m *MemoryIndex) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.index = make(map[string]map[string]*Posting)
	m.vectors = make(map[string]*rank.DocVector)
	m.docCount = 0
	m.size = 0
}
