package store

import "context"

// Well-known keys. Any of them may be missing on first run.
const (
	KeyCards    = "cards"
	KeyTheme    = "theme"
	KeyUserName = "user_name"
)

// Keys returns all keys Foxhole persists.
func Keys() []string {
	return []string{KeyCards, KeyTheme, KeyUserName}
}

// Adapter is the key-value boundary all persisted state goes through.
//
// Read never fails: backend errors are logged by the implementation and
// reported as a missing value. Write may fail (quota, disabled storage,
// unreachable server); callers decide whether that matters.
type Adapter interface {
	Read(ctx context.Context, key string) (string, bool)
	Write(ctx context.Context, key, value string) error
}
