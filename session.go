package importfilter

import (
	"crypto/sha256"
	"encoding/hex"
)

// Session holds at most one loaded table, cached by file identity so that
// repeated filter interactions on the same upload never re-run the parse
// and coercion pipeline. Uploading a different file replaces the cache
// entry wholesale. A Session is not safe for concurrent use; callers that
// share one across goroutines must serialize access.
type Session struct {
	key   string
	table *Table
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// fileIdentity derives the cache key from the upload's content and name.
// The filename participates because it selects the parser.
func fileIdentity(raw []byte, filename string) string {
	digest := sha256.New()
	digest.Write(raw)
	digest.Write([]byte{0})
	digest.Write([]byte(filename))
	return hex.EncodeToString(digest.Sum(nil))
}

// Load parses the upload into a table, returning the cached table when
// the same bytes and filename were loaded last. A parse failure leaves
// the previous entry intact.
func (s *Session) Load(raw []byte, filename string) (*Table, error) {
	key := fileIdentity(raw, filename)
	if s.table != nil && s.key == key {
		return s.table, nil
	}

	table, err := Load(raw, filename)
	if err != nil {
		return nil, err
	}
	s.key = key
	s.table = table
	return table, nil
}

// Table returns the currently loaded table, if any.
func (s *Session) Table() (*Table, bool) {
	return s.table, s.table != nil
}

// Reset discards the cached table.
func (s *Session) Reset() {
	s.key = ""
	s.table = nil
}
