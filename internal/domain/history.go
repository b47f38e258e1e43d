package domain

// HistoryEntry is one past conversion. Entries are never mutated once created.
type HistoryEntry struct {
	ID          string `json:"id"`
	ExternalURL string `json:"externalUrl"`
	OriginalURL string `json:"originalUrl"`
	CreatedAt   int64  `json:"createdAt"` // unix milliseconds, wall clock
}

// ContainsExternal reports whether the log already holds externalURL.
// Comparison is exact: no URL normalization.
func ContainsExternal(log []HistoryEntry, externalURL string) bool {
	for _, e := range log {
		if e.ExternalURL == externalURL {
			return true
		}
	}
	return false
}

// PushHead inserts entry at the head of log and drops tail entries until the
// log holds at most capacity items. The input slice is not modified.
func PushHead(log []HistoryEntry, entry HistoryEntry, capacity int) []HistoryEntry {
	out := make([]HistoryEntry, 0, len(log)+1)
	out = append(out, entry)
	out = append(out, log...)
	if capacity >= 0 && len(out) > capacity {
		out = out[:capacity]
	}
	return out
}
