package envelope

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"

	"dario.cat/mergo"
	"github.com/MKhiriev/go-hds-keeper/models"
)

// FieldPolicy lists the sensitive fields of one record type and the subset
// of them that is additionally pseudonymized.
type FieldPolicy struct {
	Sensitive     []string `json:"sensitive"`
	Pseudonymized []string `json:"pseudonymized"`
}

// IsSensitive reports whether field is encrypted at rest.
func (p FieldPolicy) IsSensitive(field string) bool {
	return slices.Contains(p.Sensitive, field)
}

// IsPseudonymized reports whether field is indexed for equality search.
func (p FieldPolicy) IsPseudonymized(field string) bool {
	return slices.Contains(p.Pseudonymized, field)
}

// Schema maps a record type to its field policy.
type Schema map[string]FieldPolicy

// DefaultSchema returns the built-in field policies of the practice
// management record types.
func DefaultSchema() Schema {
	return Schema{
		"patients": {
			Sensitive: []string{
				"firstName", "lastName", "birthDate", "email", "phone", "address",
				"socialSecurityNumber", "medicalHistory", "allergies", "notes",
			},
			Pseudonymized: []string{"lastName", "email", "phone", "socialSecurityNumber"},
		},
		"consultations": {
			Sensitive:     []string{"reason", "symptoms", "diagnosis", "treatment", "notes"},
			Pseudonymized: []string{},
		},
		"invoices": {
			Sensitive:     []string{"patientName", "patientAddress", "notes"},
			Pseudonymized: []string{"patientName"},
		},
		"users": {
			Sensitive:     []string{"email", "phone"},
			Pseudonymized: []string{"email"},
		},
	}
}

// LoadSchema returns [DefaultSchema] extended with the policies of the JSON
// file at path. Record types present in the file replace the built-in ones.
// An empty path returns the defaults.
func LoadSchema(path string) (Schema, error) {
	schema := DefaultSchema()
	if path == "" {
		return schema, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrInvalidSchema, path, err)
	}

	var overrides Schema
	if err = json.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrInvalidSchema, path, err)
	}

	if err = mergo.Merge(&schema, overrides, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("%w: merge %s: %w", ErrInvalidSchema, path, err)
	}

	if err = schema.Validate(); err != nil {
		return nil, err
	}
	return schema, nil
}

// Validate checks that every pseudonymized field is also sensitive and that
// no policy names a reserved storage key.
func (s Schema) Validate() error {
	for _, recordType := range slices.Sorted(maps.Keys(s)) {
		policy := s[recordType]
		if recordType == "" {
			return fmt.Errorf("%w: empty record type", ErrInvalidSchema)
		}
		for _, field := range policy.Sensitive {
			if field == "" || models.IsReservedKey(field) {
				return fmt.Errorf("%w: %s: invalid sensitive field %q", ErrInvalidSchema, recordType, field)
			}
		}
		for _, field := range policy.Pseudonymized {
			if !policy.IsSensitive(field) {
				return fmt.Errorf("%w: %s: pseudonymized field %q is not sensitive", ErrInvalidSchema, recordType, field)
			}
		}
	}
	return nil
}
