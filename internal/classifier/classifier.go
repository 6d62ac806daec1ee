package classifier

import (
	"context"
	"fmt"
	"strings"

	"lifelog/internal/llm"
)

const classifyMaxTokens = 1024

// Completer is the completion call the classifier depends on.
// *llm.Client satisfies it.
type Completer interface {
	Complete(ctx context.Context, system, user string, maxTokens int) (string, error)
}

// Classifier turns raw user text into a typed candidate record.
type Classifier struct {
	completer Completer
}

func New(completer Completer) *Classifier {
	return &Classifier{completer: completer}
}

// Classify submits the text (plus optional recent context) to the
// model and parses the reply. A transport failure comes back wrapped
// so callers can tell it apart from ErrUnclassified; in neither case
// has anything been written anywhere.
func (c *Classifier) Classify(ctx context.Context, text string, recentContext []string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, &ValidationError{Field: "message"}
	}

	reply, err := c.completer.Complete(ctx, llm.ClassifySystemPrompt, llm.ClassifyUserPrompt(text, recentContext), classifyMaxTokens)
	if err != nil {
		return Result{}, fmt.Errorf("classify completion: %w", err)
	}

	return parseResult(reply)
}
