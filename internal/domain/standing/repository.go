package standing

import "context"

// Repository fetches the current competition table.
type Repository interface {
	FetchStandings(ctx context.Context) (*Table, error)
}
