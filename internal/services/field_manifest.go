package services

import (
	"fmt"
	"strings"

	"github.com/terraincognita07/paycharts/internal/models"
)

// FieldManifest is the numeric schema of a dataset, taken from its first record.
// Every other record is expected to carry the same keys.
type FieldManifest struct {
	Keys []string
}

type SchemaIssue struct {
	Index   int
	Name    string
	Missing []string
	Extra   []string
}

func (issue SchemaIssue) String() string {
	parts := []string{}
	if len(issue.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(issue.Missing, ", "))
	}
	if len(issue.Extra) > 0 {
		parts = append(parts, "extra "+strings.Join(issue.Extra, ", "))
	}
	return fmt.Sprintf("record %d (%s): %s", issue.Index, issue.Name, strings.Join(parts, "; "))
}

func DescribeFields(records []models.Record) FieldManifest {
	if len(records) == 0 {
		return FieldManifest{Keys: []string{}}
	}
	return FieldManifest{Keys: records[0].NumericKeys()}
}

func (manifest FieldManifest) Empty() bool {
	return len(manifest.Keys) == 0
}

func (manifest FieldManifest) Has(key string) bool {
	for _, candidate := range manifest.Keys {
		if candidate == key {
			return true
		}
	}
	return false
}

func (manifest FieldManifest) Validate(records []models.Record) []SchemaIssue {
	issues := []SchemaIssue{}
	for index, record := range records {
		issue := SchemaIssue{Index: index, Name: record.Name}
		for _, key := range manifest.Keys {
			if _, ok := record.Value(key); !ok {
				issue.Missing = append(issue.Missing, key)
			}
		}
		for _, key := range record.NumericKeys() {
			if !manifest.Has(key) {
				issue.Extra = append(issue.Extra, key)
			}
		}
		if len(issue.Missing) > 0 || len(issue.Extra) > 0 {
			issues = append(issues, issue)
		}
	}
	return issues
}
