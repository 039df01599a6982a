package domain

// TagCount is a tag used by approved resources and how many of them carry it
type TagCount struct {
	Name  string
	Count int64
}
