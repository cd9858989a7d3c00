package llm

import "context"

// Transformer is the external text-transform collaborator. Implementations
// carry their own bounded retry policy; a returned error means the content
// could not be transformed and the caller decides how to recover.
type Transformer interface {
	Transform(ctx context.Context, systemPrompt, content string) (string, error)
}
