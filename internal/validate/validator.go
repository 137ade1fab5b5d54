package validate

import (
	"errors"
	"strings"

	"github.com/ppiankov/reclasifica/internal/model"
)

// ErrMissingIdentity reports a record without given name or first surname.
// The message is surfaced verbatim in the processing summary.
var ErrMissingIdentity = errors.New("Faltan campos obligatorios (nombres/primerApellido)")

// MissingFieldsError lists the required fields absent from a record
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return ErrMissingIdentity.Error()
}

// Is makes errors.Is(err, ErrMissingIdentity) hold
func (e *MissingFieldsError) Is(target error) bool {
	return target == ErrMissingIdentity
}

// Detail returns the missing field names, comma separated
func (e *MissingFieldsError) Detail() string {
	return strings.Join(e.Fields, ", ")
}

// Record checks that rec carries the identity fields every output file name
// is built from. Whitespace-only values count as present, as in the source.
func Record(rec *model.RawRecord) error {
	var missing []string
	if rec.GivenName == "" {
		missing = append(missing, "nombres")
	}
	if rec.FirstSurname == "" {
		missing = append(missing, "primerApellido")
	}

	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}
