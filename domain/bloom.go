package domain

import "context"

// BloomRepository is a probabilistic blog-ID existence filter, consulted
// before hitting the cache or database.
type BloomRepository interface {
	// Add puts a blog ID into the filter.
	Add(ctx context.Context, id int64) error

	// Exists checks whether the ID may exist.
	// true: possibly present, check cache/DB next.
	// false: definitely absent, return NotFound immediately.
	Exists(ctx context.Context, id int64) (bool, error)

	// BulkAdd primes the filter with many IDs at once.
	BulkAdd(ctx context.Context, ids []int64) error
}
