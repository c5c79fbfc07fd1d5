package models

const (
	// FilterAll matches every category or every project.
	FilterAll = "all"
	// FilterUnassigned matches secrets without a project.
	FilterUnassigned = "unassigned"
)

// SecretFilter narrows the secret list. Zero value matches everything.
type SecretFilter struct {
	Search   string
	Category string
	Project  string
}
