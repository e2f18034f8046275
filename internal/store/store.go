// Package store persists per-session document collections and serves
// similarity searches over their chunk embeddings.
//
// Each session is one JSON file in the storage directory, named by the
// session key and holding the session's doc_id -> document map. Files
// are rewritten whole on every mutation; the store is a best-effort
// cache, not a system of record, so load/save failures are logged and
// absorbed rather than propagated.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"chat-rag/internal/models"
)

type session struct {
	mu   sync.RWMutex
	docs map[string]models.Document

	// set under mu when the session is cleared; writers holding a
	// stale pointer must not write a cleared session back
	cleared bool
}

// Store is a session-partitioned document store. Mutations of one
// session are serialized by a per-session lock; reads and searches of
// different sessions proceed in parallel.
type Store struct {
	dir      string
	mu       sync.RWMutex
	sessions map[string]*session
}

// New opens the storage directory and eagerly loads every session file
// found there. Unreadable or corrupt files are skipped and treated as
// empty sessions.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	s := &Store{
		dir:      dir,
		sessions: make(map[string]*session),
	}
	s.loadFromDisk()
	return s, nil
}

func (s *Store) sessionFile(sessionID string) string {
	return filepath.Join(s.dir, sessionID+".json")
}

func (s *Store) loadFromDisk() {
	paths, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		log.Warn().Err(err).Str("dir", s.dir).Msg("error scanning storage directory")
		return
	}
	for _, path := range paths {
		sessionID := strings.TrimSuffix(filepath.Base(path), ".json")
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("session", sessionID).Msg("error loading session from disk")
			continue
		}
		docs := make(map[string]models.Document)
		if err := json.Unmarshal(data, &docs); err != nil {
			log.Warn().Err(err).Str("session", sessionID).Msg("error decoding session file")
			continue
		}
		s.sessions[sessionID] = &session{docs: docs}
	}
	log.Info().Int("sessions", len(s.sessions)).Str("dir", s.dir).Msg("document store loaded")
}

// saveSession rewrites the session's backing file. Called with the
// session's write lock held. Failures are logged; the session keeps
// operating in memory only.
func (s *Store) saveSession(sessionID string, sess *session) {
	data, err := json.Marshal(sess.docs)
	if err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("error encoding session")
		return
	}
	if err := os.WriteFile(s.sessionFile(sessionID), data, 0o644); err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("error saving session to disk")
	}
}

// getSession returns the session or nil when absent.
func (s *Store) getSession(sessionID string) *session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[sessionID]
}

// getOrCreateSession returns the session, creating it on first use.
func (s *Store) getOrCreateSession(sessionID string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{docs: make(map[string]models.Document)}
		s.sessions[sessionID] = sess
	}
	return sess
}

// AddDocument inserts or overwrites a document by its id and persists
// the session. A concurrent ClearSession marks the session cleared
// before the file is removed, so the insert retries against a fresh
// session rather than resurrecting the cleared one.
func (s *Store) AddDocument(sessionID string, doc models.Document) {
	for {
		sess := s.getOrCreateSession(sessionID)
		sess.mu.Lock()
		if sess.cleared {
			sess.mu.Unlock()
			continue
		}
		sess.docs[doc.ID] = doc
		s.saveSession(sessionID, sess)
		sess.mu.Unlock()
		return
	}
}

// GetDocument returns the document and whether it exists.
func (s *Store) GetDocument(sessionID, docID string) (models.Document, bool) {
	sess := s.getSession(sessionID)
	if sess == nil {
		return models.Document{}, false
	}
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	doc, ok := sess.docs[docID]
	return doc, ok
}

// ListDocuments returns a summary for every document in the session.
// Embeddings are never included in listings.
func (s *Store) ListDocuments(sessionID string) []models.DocumentSummary {
	sess := s.getSession(sessionID)
	if sess == nil {
		return []models.DocumentSummary{}
	}
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	summaries := make([]models.DocumentSummary, 0, len(sess.docs))
	for _, doc := range sess.docs {
		summaries = append(summaries, models.DocumentSummary{
			ID:         doc.ID,
			Filename:   doc.Filename,
			ChunkCount: len(doc.Chunks),
			UploadTime: doc.UploadTime,
			Size:       len(doc.Text),
		})
	}
	return summaries
}

// DeleteDocument removes a document and persists the session. Returns
// false when the session or document is absent.
func (s *Store) DeleteDocument(sessionID, docID string) bool {
	sess := s.getSession(sessionID)
	if sess == nil {
		return false
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.cleared {
		return false
	}
	if _, ok := sess.docs[docID]; !ok {
		return false
	}
	delete(sess.docs, docID)
	s.saveSession(sessionID, sess)
	return true
}

// ClearSession drops the session's document map and removes its backing
// file if present. The session is marked cleared under its write lock,
// which waits out any in-flight writer and stops stale writers from
// writing it back; the store lock is held across the file removal so
// the session cannot be re-created until its old file is gone.
func (s *Store) ClearSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return
	}
	delete(s.sessions, sessionID)
	sess.mu.Lock()
	sess.cleared = true
	sess.docs = nil
	sess.mu.Unlock()
	if err := os.Remove(s.sessionFile(sessionID)); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("session", sessionID).Msg("error removing session file")
	}
}
