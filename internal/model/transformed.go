package model

import (
	"encoding/json"
	"time"
)

// TimestampLayout matches the ISO-8601 form used across all generated files
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp formats t in UTC with millisecond precision
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ResponsibilitySummary is the common-section view of the first area type and
// the first responsibility level. Keys of a list that was absent are omitted.
type ResponsibilitySummary struct {
	AreaType     *string `json:"tipoArea,omitempty"`
	AreaTypeCode *string `json:"valorTipoArea,omitempty"`
	Level        *string `json:"nivel,omitempty"`
	LevelCode    *string `json:"claveNivel,omitempty"`
}

// Employment summarizes the declarant's post
type Employment struct {
	Title string `json:"denominacion"`
	Unit  string `json:"areaAdscripcion"`
}

// Common is the part of every transformed record that does not depend on the
// procedure type. Field order is the serialized key order.
type Common struct {
	ID                   string                `json:"id"`
	CaptureDate          string                `json:"fechaCaptura"`
	FiscalYear           string                `json:"ejercicioFiscal"`
	Branch               CodeLabel             `json:"ramo"`
	TaxID                string                `json:"rfc"`
	PopulationID         string                `json:"curp"`
	GivenName            string                `json:"nombres"`
	FirstSurname         string                `json:"primerApellido"`
	SecondSurname        string                `json:"segundoApellido"`
	Gender               CodeLabel             `json:"genero"`
	Institution          Institution           `json:"institucionDependencia"`
	Position             Position              `json:"puesto"`
	ResponsibilityLevels ResponsibilitySummary `json:"nivelesResponsabilidad"`
	Observations         string                `json:"observaciones"`
	Employment           Employment            `json:"empleoCargoComision"`
	// The key keeps the historical misspelling consumers already depend on.
	ProcedureType    string          `json:"tipoProcedimineto"`
	Superior         json.RawMessage `json:"superiorInmediato"`
	StillParticipate bool            `json:"continuaParticipando"`
}

// ClassificationTag records which category bucket a record was sorted into
type ClassificationTag struct {
	Category      Category `json:"categoria"`
	OriginalLabel string   `json:"tipoProcedimientoOriginal"`
	ClassifiedAt  string   `json:"fechaClasificacion"`
}

// ReviewAnnotation marks a record that needs manual disambiguation
type ReviewAnnotation struct {
	RequiresReview bool     `json:"requiereRevision"`
	Reason         string   `json:"razon"`
	ProcessedAt    string   `json:"fechaProcesamiento"`
	DetectedLabels []string `json:"procedimientosDetectados"`
}

// TransformedRecord is the normalized output for one accepted or flagged record.
// Exactly one variant section of Sections is set and its keys are flattened
// into the top level of the JSON object.
type TransformedRecord struct {
	Common
	Sections

	Classification *ClassificationTag `json:"_clasificacion,omitempty"`
	Review         *ReviewAnnotation  `json:"_metadata,omitempty"`
}
