package setting

import "context"

// Setting holds the admin-managed flags that shape account creation.
type Setting struct {
	AutoApproved bool
}

// Repository reads the singleton settings row. A missing row yields the
// zero value (auto-approval off).
type Repository interface {
	Get(ctx context.Context) (*Setting, error)
}
