package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CodeLabel is the catalog pair used throughout the source format
type CodeLabel struct {
	Code  Text `json:"clave"`
	Label Text `json:"valor"`
}

// UnmarshalJSON decodes an object; any other value leaves the zero CodeLabel
func (c *CodeLabel) UnmarshalJSON(data []byte) error {
	type plain CodeLabel
	var v plain
	if err := decodeObject(data, &v); err != nil {
		return err
	}
	*c = CodeLabel(v)
	return nil
}

// CodeLabels is a catalog list. A value that is not an array decodes to an
// empty list.
type CodeLabels []CodeLabel

// UnmarshalJSON implements json.Unmarshaler
func (l *CodeLabels) UnmarshalJSON(data []byte) error {
	if !startsWith(data, '[') {
		*l = nil
		return nil
	}
	var v []CodeLabel
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*l = v
	return nil
}

// Institution identifies the public body the declarant works for
type Institution struct {
	Name         Text `json:"nombre"`
	Abbreviation Text `json:"siglas"`
	Code         Text `json:"clave"`
}

// UnmarshalJSON decodes an object; any other value leaves the zero Institution
func (in *Institution) UnmarshalJSON(data []byte) error {
	type plain Institution
	var v plain
	if err := decodeObject(data, &v); err != nil {
		return err
	}
	*in = Institution(v)
	return nil
}

// Position is the declarant's post
type Position struct {
	Name  Text `json:"nombre"`
	Level Text `json:"nivel"`
}

// UnmarshalJSON decodes an object; any other value leaves the zero Position
func (p *Position) UnmarshalJSON(data []byte) error {
	type plain Position
	var v plain
	if err := decodeObject(data, &v); err != nil {
		return err
	}
	*p = Position(v)
	return nil
}

func decodeObject(data []byte, v any) error {
	if !startsWith(data, '{') {
		return nil
	}
	return json.Unmarshal(data, v)
}

func startsWith(data []byte, c byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == c
}

// RawRecord is one disclosure declaration as found in the source files.
// Every field is optional; absent fields and fields of an unexpected JSON
// shape decode to their zero value.
type RawRecord struct {
	ID                   Text            `json:"id"`
	CaptureDate          Text            `json:"fechaCaptura"`
	FiscalYear           Text            `json:"ejercicioFiscal"`
	Branch               *CodeLabel      `json:"ramo"`
	TaxID                Text            `json:"rfc"`
	PopulationID         Text            `json:"curp"`
	GivenName            Text            `json:"nombres"`
	FirstSurname         Text            `json:"primerApellido"`
	SecondSurname        Text            `json:"segundoApellido"`
	Gender               *CodeLabel      `json:"genero"`
	Institution          *Institution    `json:"institucionDependencia"`
	Position             *Position       `json:"puesto"`
	AreaTypes            CodeLabels      `json:"tipoArea"`
	ResponsibilityLevels CodeLabels      `json:"nivelResponsabilidad"`
	Observations         Text            `json:"observaciones"`
	ProcedureTypes       CodeLabels      `json:"tipoProcedimiento"`
	Superior             json.RawMessage `json:"superiorInmediato"`
}

// DecodeRecord decodes a single source element into a RawRecord
func DecodeRecord(data json.RawMessage) (RawRecord, error) {
	var rec RawRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return RawRecord{}, fmt.Errorf("decode record: %w", err)
	}
	return rec, nil
}

// InstitutionName returns the institution name or ""
func (r *RawRecord) InstitutionName() string {
	if r.Institution == nil {
		return ""
	}
	return r.Institution.Name.String()
}

// PositionName returns the position name or ""
func (r *RawRecord) PositionName() string {
	if r.Position == nil {
		return ""
	}
	return r.Position.Name.String()
}

// ProcedureLabels returns the labels of every declared procedure type
func (r *RawRecord) ProcedureLabels() []string {
	labels := make([]string, 0, len(r.ProcedureTypes))
	for _, p := range r.ProcedureTypes {
		labels = append(labels, p.Label.String())
	}
	return labels
}

// FirstProcedureLabel returns the label of the first procedure type, or ""
func (r *RawRecord) FirstProcedureLabel() string {
	if len(r.ProcedureTypes) == 0 {
		return ""
	}
	return r.ProcedureTypes[0].Label.String()
}
