package model

// Summary is the processing summary written under SummaryFile
type Summary struct {
	RunID       string           `json:"idEjecucion"`
	GeneratedAt string           `json:"fechaGeneracion"`
	SourceDir   string           `json:"directorioOrigen"`
	DestDir     string           `json:"directorioDestino"`
	TotalFiles  int              `json:"totalArchivos"`
	Counts      CategoryCounts   `json:"clasificacion"`
	Errors      []string         `json:"errores"`
	Warnings    []string         `json:"advertencias"`
	Buckets     []string         `json:"directoriosCreados"`
	Criteria    CategoryCriteria `json:"criteriosClasificacion"`
	Rules       []string         `json:"reglasAplicadas"`
	Detail      DetailedStats    `json:"estadisticasDetalladas"`
}

// CategoryCounts is the per-bucket record count, review bucket included
type CategoryCounts struct {
	ContractingPublic int `json:"contracting_public"`
	ConcessionGrant   int `json:"concession_grant"`
	AssetDisposal     int `json:"asset_disposal"`
	AppraisalRuling   int `json:"appraisal_ruling"`
	Unclassified      int `json:"unclassified"`
	Review            int `json:"revisar_casos_sin_tipoProcedimiento_definido"`
}

// CategoryCriteria describes what each category matches
type CategoryCriteria struct {
	ContractingPublic string `json:"contracting_public"`
	ConcessionGrant   string `json:"concession_grant"`
	AssetDisposal     string `json:"asset_disposal"`
	AppraisalRuling   string `json:"appraisal_ruling"`
	Unclassified      string `json:"unclassified"`
	Review            string `json:"revisar_casos"`
}

// DetailedStats breaks item counts down per produced bucket
type DetailedStats struct {
	NormalByCategory map[string]int `json:"archivosNormalesPorCategoria"`
	ReviewByCategory map[string]int `json:"archivosRevisionPorCategoria"`
}

// ReviewSuggestion is an advisory pick among the labels of a flagged record
type ReviewSuggestion struct {
	File           string   `json:"archivo"`
	DetectedLabels []string `json:"procedimientosDetectados"`
	Suggestion     string   `json:"sugerencia"`
	Model          string   `json:"modelo"`
}

// SuggestionsFile is the reserved output name of the review suggestions
const SuggestionsFile = "_sugerencias_revision.json"
