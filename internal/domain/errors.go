package domain

import "errors"

var (
	// ErrCatalogUnavailable is returned when the catalog fetch at the start of
	// a batch fails. The batch produces no records in that case.
	ErrCatalogUnavailable = errors.New("ingredient catalog unavailable")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when a catalog snapshot is not in the cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when the cache backend cannot be reached
	ErrCacheUnavailable = errors.New("cache service unavailable")

	// ErrPersistenceFailure is returned when writing an assembled batch fails
	ErrPersistenceFailure = errors.New("batch persistence failed")
)
