package storage

import (
	"fmt"

	"github.com/tiktoken-go/tokenizer"
)

// per-message overhead for role and structure (approximate)
const messageOverhead = 4

// TokenCounter estimates token counts when the provider omits its usage block
type TokenCounter struct {
	enc tokenizer.Codec
}

// NewTokenCounter loads the cl100k_base encoding (used by GPT models)
func NewTokenCounter() (*TokenCounter, error) {
	enc, err := tokenizer.Get(tokenizer.Cl100kBase)
	if err != nil {
		return nil, fmt.Errorf("failed to get tokenizer: %w", err)
	}
	return &TokenCounter{enc: enc}, nil
}

// CountMessages counts tokens across chat message contents
func (c *TokenCounter) CountMessages(contents ...string) (int, error) {
	total := 0
	for _, content := range contents {
		n, err := c.CountText(content)
		if err != nil {
			return 0, err
		}
		total += n + messageOverhead
	}
	return total, nil
}

// CountText counts tokens in a bare string
func (c *TokenCounter) CountText(text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	tokens, _, err := c.enc.Encode(text)
	if err != nil {
		return 0, fmt.Errorf("failed to encode content: %w", err)
	}
	return len(tokens), nil
}
