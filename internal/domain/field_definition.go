package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// FieldEntity names the record type a custom field extends.
type FieldEntity string

const (
	FieldEntityClient  FieldEntity = "client"
	FieldEntityProject FieldEntity = "project"
)

// FieldType enumerates supported custom field inputs.
type FieldType string

const (
	FieldTypeText        FieldType = "text"
	FieldTypeLongText    FieldType = "longtext"
	FieldTypeTextarea    FieldType = "textarea"
	FieldTypeNumber      FieldType = "number"
	FieldTypeDate        FieldType = "date"
	FieldTypeURL         FieldType = "url"
	FieldTypeEmail       FieldType = "email"
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiSelect FieldType = "multiselect"
	FieldTypeCheckbox    FieldType = "checkbox"
)

// DefaultFieldCategory groups fields created without a category.
const DefaultFieldCategory = "General"

var fieldKeyPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// FieldDefinition describes a user-defined attribute of clients or projects.
type FieldDefinition struct {
	ID         string
	Entity     FieldEntity
	Name       string
	Label      string
	Type       FieldType
	Category   string
	IsRequired bool
	SortOrder  int
	Options    []string
	Active     bool
	CreatedAt  time.Time
}

// FieldDefinitionPatch is a partial field definition edit.
type FieldDefinitionPatch struct {
	Label      *string
	Type       *FieldType
	Category   *string
	IsRequired *bool
	SortOrder  *int
	Options    []string
	OptionsSet bool
	Active     *bool
}

// FieldKey normalises a human entered name into the storage key of a field,
// e.g. "Fecha Aniversario" becomes "fecha_aniversario".
func FieldKey(name string) string {
	return strings.ReplaceAll(slug.Make(strings.TrimSpace(name)), "-", "_")
}

// ValidFieldKey reports whether key is usable as a custom field name.
func ValidFieldKey(key string) bool {
	return fieldKeyPattern.MatchString(key)
}
