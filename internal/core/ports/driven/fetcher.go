package driven

import "context"

// Fetcher downloads a remote input to memory. Implementations make a
// single attempt; a download failure fails the request without retry.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
