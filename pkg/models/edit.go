package models

// EditResult describes what happened to a file handed to the external
// editor. Content is the full file text and is only set when Modified.
type EditResult struct {
	Modified bool
	Content  string
}
