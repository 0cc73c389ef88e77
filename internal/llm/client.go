package llm

import "context"

// Client extracts a structured recipe list from raw menu text.
type Client interface {
	ExtractMenu(ctx context.Context, menuText string) (string, error)
}
