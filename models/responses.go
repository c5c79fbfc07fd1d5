package models

// SecretsResponse is the body of GET /vault.
type SecretsResponse struct {
	Secrets []Secret `json:"secrets"`
}

// ProjectsResponse is the body of GET /vault/projects.
type ProjectsResponse struct {
	Projects []Project `json:"projects"`
}

// ErrorResponse is written by the backend for every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// VersionResponse is the body of GET /api/version.
type VersionResponse struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}
