package llm

import (
	"context"
	"fmt"
)

// Client is a minimal LLM interface to allow pluggable providers.
type Client interface {
	// Answer responds to a question using only the supplied document text.
	Answer(ctx context.Context, documentText, question string) (string, error)
	// Service is the user-facing name of the hosted service, used when
	// surfacing failures ("Error querying Claude: ...").
	Service() string
}

// buildPrompt composes the single instruction sent to the model. The model
// is told to answer from the document and to say so when the answer is not
// in it.
func buildPrompt(documentText, question string) string {
	return fmt.Sprintf(`Based on the following document content, please answer the question. If the answer cannot be found in the document, please say so.

Document content:
%s

Question: %s

Answer:`, documentText, question)
}
