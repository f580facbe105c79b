package lsp

import "sync"

// Document is one open text document mirrored from the client.
type Document struct {
	URI     string
	Version int32
	Content string
}

// DocumentStore holds open document contents keyed by URI.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]*Document)}
}

func (s *DocumentStore) Open(uri string, version int32, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = &Document{URI: uri, Version: version, Content: content}
}

func (s *DocumentStore) Update(uri string, version int32, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc, ok := s.docs[uri]; ok {
		doc.Version = version
		doc.Content = content
		return
	}
	s.docs[uri] = &Document{URI: uri, Version: version, Content: content}
}

func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

// Get returns a snapshot of the document, or ok=false when it is not
// open.
func (s *DocumentStore) Get(uri string) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	if !ok {
		return Document{}, false
	}
	return *doc, true
}
