package domain

// ListingFilter is the predicate shared by the listing page query and its
// total count: same filter, same visibility gate.
type ListingFilter struct {
	Category       *CategoryId
	IncludeTrusted bool
}

// ThreadPatch is what the thread aggregate actually persists on update,
// after validation and the close/reopen check have run. Nil pointers leave
// the column untouched. SetClosed guards the closed/closer pair so an update
// without a close transition never touches them.
type ThreadPatch struct {
	Title     ThreadTitle
	Sticky    *bool
	Nsfw      *bool
	SetClosed bool
	Closed    bool
	Closer    *UserId
}
