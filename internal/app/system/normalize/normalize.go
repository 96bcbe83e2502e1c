// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email lowercases and trims an email address. Empty or all-whitespace
// input folds to "".
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace and collapses interior runs of
// whitespace to single spaces.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Username lowercases and trims a login username.
func Username(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Team uppercases and trims a team name. Task documents store teams
// uppercased; employee documents keep the original casing and match
// case-insensitively via the folded companion field.
func Team(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
