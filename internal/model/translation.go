package model

// TranslationResult is either Recognized, carrying the translated commits in payload order,
// or Failure, carrying a diagnostic message. Use Recognized or Failure to build one.
type TranslationResult struct {
	recognized bool
	commits    []CommitRecord
	failure    string
}

func Recognized(commits []CommitRecord) TranslationResult {
	if commits == nil {
		commits = []CommitRecord{}
	}
	return TranslationResult{recognized: true, commits: commits}
}

func Failure(message string) TranslationResult {
	return TranslationResult{failure: message}
}

func (r TranslationResult) IsRecognized() bool {
	return r.recognized
}

func (r TranslationResult) IsFailure() bool {
	return !r.recognized
}

// Commits returns a copy of the recognized commits; nil for a Failure.
func (r TranslationResult) Commits() []CommitRecord {
	if !r.recognized {
		return nil
	}
	return append([]CommitRecord{}, r.commits...)
}

// FailureMessage is empty for a Recognized result.
func (r TranslationResult) FailureMessage() string {
	return r.failure
}
