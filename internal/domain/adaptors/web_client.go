package adaptors

import "context"

// WebClient fetches the raw body of a page. The body is returned whatever
// the status code.
type WebClient interface {
	Fetch(ctx context.Context, url string) ([]byte, int, error)
}
