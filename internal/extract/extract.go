// Package extract converts uploaded documents into plain text.
package extract

import "context"

// Extractor turns a binary document into plain text.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}
