// Package session holds per-user transient state: the text and name of the
// most recently uploaded document. State lives for the session only and is
// always replaced as a whole, never field by field.
package session

import (
	"context"
	"strings"
	"unicode/utf8"
)

// Session is one user's state. An empty DocumentText means no document has
// been loaded yet.
type Session struct {
	DocumentText string `json:"document_text"`
	DocumentName string `json:"document_name"`
}

// Loaded reports whether a document has been uploaded in this session.
func (s Session) Loaded() bool {
	return s.DocumentText != ""
}

// Stats are display-only figures derived from the document text.
type Stats struct {
	Words int `json:"word_count"`
	Chars int `json:"char_count"`
}

// Stats computes word and character counts for display. Words are
// whitespace-delimited; characters are runes of the trimmed text, so page
// separators added by extraction do not inflate the figure.
func (s Session) Stats() Stats {
	return Stats{
		Words: len(strings.Fields(s.DocumentText)),
		Chars: utf8.RuneCountInString(strings.TrimSpace(s.DocumentText)),
	}
}

// Store keeps sessions keyed by session ID. Implementations must treat Put
// as full replacement of the session value.
type Store interface {
	// Get returns the session and whether it exists.
	Get(ctx context.Context, id string) (Session, bool, error)
	// Put stores the session, replacing any previous value.
	Put(ctx context.Context, id string, sess Session) error
	// Delete removes the session.
	Delete(ctx context.Context, id string) error
	// Close releases any backing resources.
	Close() error
}
