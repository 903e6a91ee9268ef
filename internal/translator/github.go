package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"basegraph.app/commitrelay/common/logger"
	"basegraph.app/commitrelay/internal/model"
)

const (
	GitHubEventHeader = "X-Github-Event"
	GitHubPushEvent   = "push"

	// GitHubFailureMessage is returned for every payload that cannot be decoded.
	GitHubFailureMessage = "It was not possible to translate the message."

	githubUserURLFormat = "https://github.com/%s"
)

type GitHubTranslator struct {
	logger *slog.Logger
}

func NewGitHubTranslator(logger *slog.Logger) *GitHubTranslator {
	if logger == nil {
		logger = slog.Default()
	}
	return &GitHubTranslator{logger: logger}
}

func (t *GitHubTranslator) Name() string {
	return "github"
}

func (t *GitHubTranslator) CanProcess(msg model.InboundMessage) bool {
	return slices.Contains(msg.HeaderValues(GitHubEventHeader), GitHubPushEvent)
}

func (t *GitHubTranslator) Execute(ctx context.Context, msg model.InboundMessage) (result model.TranslationResult) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "commitrelay.translator.github"})

	defer func() {
		if r := recover(); r != nil {
			t.logger.ErrorContext(ctx, "github push translation panicked", "panic", r)
			result = model.Failure(GitHubFailureMessage)
		}
	}()

	commits, err := decodePush(msg.Body)
	if err != nil {
		t.logger.WarnContext(ctx, "github push translation failed",
			"error", err,
			"body", logger.Truncate(msg.Body, 512),
		)
		return model.Failure(GitHubFailureMessage)
	}

	t.logger.DebugContext(ctx, "github push translated", "commits", len(commits))
	return model.Recognized(commits)
}

// jsonObject is one level of the payload. Keys are looked up exactly as sent; struct
// decoding would fold case and accept "ID" or "Repository" for the required keys.
type jsonObject map[string]json.RawMessage

func decodeObject(data []byte, field string) (jsonObject, error) {
	var obj jsonObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("decode %s: %w", field, err)
	}
	if obj == nil {
		return nil, missingField(field)
	}
	return obj, nil
}

func (o jsonObject) requiredObject(key string) (jsonObject, error) {
	raw, ok := o[key]
	if !ok {
		return nil, missingField(key)
	}
	return decodeObject(raw, key)
}

func (o jsonObject) requiredArray(key string) ([]json.RawMessage, error) {
	raw, ok := o[key]
	if !ok {
		return nil, missingField(key)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	if items == nil {
		return nil, missingField(key)
	}
	return items, nil
}

// requiredString returns the value of a required string key; absent and null are both missing.
func (o jsonObject) requiredString(key string) (string, error) {
	raw, ok := o[key]
	if !ok {
		return "", missingField(key)
	}
	var v *string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", fmt.Errorf("decode %s: %w", key, err)
	}
	if v == nil {
		return "", missingField(key)
	}
	return *v, nil
}

func decodePush(body string) ([]model.CommitRecord, error) {
	push, err := decodeObject([]byte(body), "push payload")
	if err != nil {
		return nil, err
	}

	repository, err := push.requiredObject("repository")
	if err != nil {
		return nil, err
	}
	repoName, err := repository.requiredString("name")
	if err != nil {
		return nil, fmt.Errorf("repository: %w", err)
	}
	repoURL, err := repository.requiredString("url")
	if err != nil {
		return nil, fmt.Errorf("repository: %w", err)
	}
	repo := model.Repo{Name: repoName, URL: repoURL}

	commits, err := push.requiredArray("commits")
	if err != nil {
		return nil, err
	}

	records := make([]model.CommitRecord, 0, len(commits))
	for i, raw := range commits {
		record, err := decodeCommit(raw, repo)
		if err != nil {
			return nil, fmt.Errorf("commits[%d]: %w", i, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func decodeCommit(raw json.RawMessage, repo model.Repo) (model.CommitRecord, error) {
	c, err := decodeObject(raw, "commit")
	if err != nil {
		return model.CommitRecord{}, err
	}

	id, err := c.requiredString("id")
	if err != nil {
		return model.CommitRecord{}, err
	}
	url, err := c.requiredString("url")
	if err != nil {
		return model.CommitRecord{}, err
	}
	message, err := c.requiredString("message")
	if err != nil {
		return model.CommitRecord{}, err
	}
	rawTimestamp, err := c.requiredString("timestamp")
	if err != nil {
		return model.CommitRecord{}, err
	}
	timestamp, err := time.Parse(time.RFC3339, rawTimestamp)
	if err != nil {
		return model.CommitRecord{}, fmt.Errorf("parse timestamp %q: %w", rawTimestamp, err)
	}

	author, err := c.requiredObject("author")
	if err != nil {
		return model.CommitRecord{}, err
	}
	authorName, err := author.requiredString("name")
	if err != nil {
		return model.CommitRecord{}, fmt.Errorf("author: %w", err)
	}
	authorEmail, err := author.requiredString("email")
	if err != nil {
		return model.CommitRecord{}, fmt.Errorf("author: %w", err)
	}
	username, err := author.requiredString("username")
	if err != nil {
		return model.CommitRecord{}, fmt.Errorf("author: %w", err)
	}

	return model.CommitRecord{
		Author: model.Author{
			Name:  authorName,
			Email: authorEmail,
			URL:   githubUserURL(username),
		},
		Timestamp: timestamp,
		Message:   message,
		Repo:      repo,
		Source:    model.CommitSourceGitHub,
		CommitID: model.CommitID{
			Name: id,
			URL:  url,
		},
	}, nil
}

// githubUserURL substitutes the username verbatim; it is not escaped or validated.
func githubUserURL(username string) string {
	return fmt.Sprintf(githubUserURLFormat, username)
}

func missingField(field string) error {
	return fmt.Errorf("missing required field %q", field)
}
