package sources

import (
	"context"

	"github.com/newsjungle/newsjungle/app/article"
)

// Source is a single news backend behind the common fetch contract.
// Implementations fail independently: an error from one source never
// affects its siblings, and a source returning zero articles is not an
// error. Adapters with missing credentials are guaranteed-empty producers.
type Source interface {
	Name() string
	Fetch(ctx context.Context, query string, windowDays int) ([]article.Raw, error)
}
