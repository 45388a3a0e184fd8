package services

import (
	"github.com/aaronbarnaby/create-release-action/internal/models"
	"github.com/sirupsen/logrus"
)

// EntryForm selects which of the two rendering shapes an entry uses. It is
// decided once during classification so the renderer never re-inspects the
// record.
type EntryForm int

const (
	// PlainEntry renders as short hash, header and author name
	PlainEntry EntryForm = iota
	// TypedEntry renders as scope, subject and a linked author
	TypedEntry
)

// Entry is a commit record together with its rendering form
type Entry struct {
	Record *models.CommitRecord
	Form   EntryForm
}

// Classification is the full output of classifying a commit range: the
// breaking bucket, one bucket per taxonomy type, the uncategorized bucket
// and the contributor roster. Bucket membership preserves input order.
//
// The breaking bucket overlaps with the others: a breaking commit appears
// there in addition to its type or uncategorized bucket.
type Classification struct {
	Breaking      []Entry
	ByType        map[models.CommitType][]Entry
	Uncategorized []Entry
	Contributors  []*models.Contributor
}

// CommitCount returns the number of classified commits, counting each input
// record once regardless of breaking-bucket membership.
func (c *Classification) CommitCount() int {
	count := len(c.Uncategorized)
	for _, entries := range c.ByType {
		count += len(entries)
	}
	return count
}

// ClassifierService assigns commit records to changelog buckets and extracts
// the contributor roster
type ClassifierService struct {
	log *logrus.Logger
}

// NewClassifierService creates a new ClassifierService
func NewClassifierService(log *logrus.Logger) *ClassifierService {
	return &ClassifierService{log: log}
}

// Classify groups records into buckets. Every record lands in exactly one of
// the type buckets or the uncategorized bucket; records flagged as breaking
// additionally land in the breaking bucket.
func (s *ClassifierService) Classify(records []*models.CommitRecord) *Classification {
	classification := &Classification{
		ByType: make(map[models.CommitType][]Entry),
	}

	for _, record := range records {
		entry := Entry{Record: record, Form: PlainEntry}
		if record.Categorized() {
			entry.Form = TypedEntry
		}

		if record.Breaking {
			classification.Breaking = append(classification.Breaking, entry)
		}

		if record.Categorized() {
			classification.ByType[record.Type] = append(classification.ByType[record.Type], entry)
		} else {
			classification.Uncategorized = append(classification.Uncategorized, entry)
		}

		s.addContributor(classification, record)
	}

	s.log.WithFields(logrus.Fields{
		"commits":      classification.CommitCount(),
		"breaking":     len(classification.Breaking),
		"contributors": len(classification.Contributors),
	}).Debug("Classified commit range")

	return classification
}

// addContributor adds the record's identity to the roster unless an entry
// with the same login is already present. Roster order is first-seen order.
func (s *ClassifierService) addContributor(classification *Classification, record *models.CommitRecord) {
	if record.Commit == nil {
		return
	}

	identity := record.Commit.Identity()
	if identity == nil {
		return
	}

	for _, existing := range classification.Contributors {
		if existing.Login == identity.Login {
			return
		}
	}

	classification.Contributors = append(classification.Contributors, models.NewContributor(identity))
}
