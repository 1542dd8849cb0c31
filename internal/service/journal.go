package service

import "adventure-server/internal/models"

// ComputeMissingKeywords returns the keywords of required absent from journal,
// in required order. An empty result grants access.
func ComputeMissingKeywords(required, journal models.KeywordSet) models.KeywordSet {
	return required.Difference(journal)
}

// MergeJournal returns current with granted appended; entries already present
// keep their first position.
func MergeJournal(current, granted models.KeywordSet) models.KeywordSet {
	return current.Union(granted)
}
