package model

import "time"

// CommitSource identifies the system a commit record was translated from.
type CommitSource string

const (
	CommitSourceGitHub CommitSource = "GitHub"
)

type Author struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	URL   string `json:"url"`
}

type Repo struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// CommitID carries the upstream commit identifier (the sha for git providers) and its web URL.
type CommitID struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// CommitRecord is the canonical unit forwarded to the commit-ingestion pipeline.
type CommitRecord struct {
	Author    Author       `json:"author"`
	Timestamp time.Time    `json:"timestamp"`
	Message   string       `json:"message"`
	Repo      Repo         `json:"repo"`
	Source    CommitSource `json:"source"`
	CommitID  CommitID     `json:"commit_id"`
	Extension any          `json:"extension"` // reserved for provider specific data, nil for GitHub
}
