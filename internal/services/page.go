package services

// Page is one page of a filtered, sorted collection.
type Page[T any] struct {
	Items []T
	Total int64
	Page  int
	Limit int
}
