package domain

// ThreadPage is the pagination result shared by listing and search, so
// callers are agnostic to which path produced it.
type ThreadPage struct {
	Items      []ThreadMetadata
	TotalCount int
	Page       int
	PerPage    int
}
