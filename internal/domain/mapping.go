package domain

// FolderMapping assigns a billing classification and an optional project
// identity to a working folder. Lookups fall back to parent directories, so
// a mapping on a workspace root covers everything under it.
type FolderMapping struct {
	Folder         string
	Classification Classification
	ProjectID      *int
	ProjectName    string
	// Activity overrides the session's activity label. Only meaningful for
	// non-pro classifications, where no external activity mapping applies.
	Activity string
}
