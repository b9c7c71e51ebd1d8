package repository

import "time"

// UserListFilter filters the user list query.
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Language    string
	ActiveOnly  bool
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// PlantReadingListFilter filters the reading history query.
type PlantReadingListFilter struct {
	Page      int
	PageSize  int
	PlantID   uint
	AddedFrom *time.Time
	AddedTo   *time.Time
}
