package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/ppiankov/reclasifica/internal/batch"
	"github.com/ppiankov/reclasifica/internal/model"
)

var fixedTime = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

func process(t *testing.T, docs ...string) *batch.Result {
	t.Helper()
	inputs := make([]json.RawMessage, len(docs))
	for i, d := range docs {
		inputs[i] = json.RawMessage(d)
	}
	return batch.NewProcessor(nil, batch.WithClock(fixedClock)).Process(inputs)
}

func newTestBuilder() *Builder {
	return NewBuilder(WithClock(fixedClock), WithRunID(func() string { return "run-1" }))
}

func TestBuild_Paths(t *testing.T) {
	result := process(t,
		`{"id":"1","nombres":"ANA","primerApellido":"LOPEZ","tipoProcedimiento":[{"valor":"LICITACIÓN PÚBLICA"}]}`,
		`{"id":"2","nombres":"JUAN","primerApellido":"ROMERO","tipoProcedimiento":[{"valor":"CONCESIÓN"},{"valor":"VENTA"}]}`,
		`{"id":"3","nombres":"ANA"}`,
	)

	out, err := newTestBuilder().Build(result, "in", "out")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	want := []string{
		"_resumen_procesamiento.json",
		"contracting_public/1_ANA_LOPEZ.json",
		"revisar_casos_sin_tipoProcedimiento_definido/2_JUAN_ROMERO.json",
	}
	if diff := cmp.Diff(want, out.Paths()); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
	if out.Summary.TotalFiles != 2 {
		t.Errorf("expected 2 record files, got %d", out.Summary.TotalFiles)
	}
}

func TestBuild_Summary(t *testing.T) {
	result := process(t,
		`{"id":"1","nombres":"ANA","primerApellido":"LOPEZ","tipoProcedimiento":[{"valor":"VENTA"}]}`,
		`{"id":"2","nombres":"JUAN","primerApellido":"ROMERO","tipoProcedimiento":[{"valor":"A"},{"valor":"B"}]}`,
		`{"id":"3","nombres":"ANA"}`,
	)

	out, err := newTestBuilder().Build(result, "/data/in", "/data/out")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	s := out.Summary
	if s.RunID != "run-1" || s.GeneratedAt != "2024-03-01T09:30:00.000Z" {
		t.Errorf("unexpected run metadata: %s %s", s.RunID, s.GeneratedAt)
	}
	if s.SourceDir != "/data/in" || s.DestDir != "/data/out" {
		t.Errorf("unexpected dirs: %s %s", s.SourceDir, s.DestDir)
	}

	wantCounts := model.CategoryCounts{AssetDisposal: 1, Review: 1}
	if diff := cmp.Diff(wantCounts, s.Counts); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}

	wantBuckets := []string{"asset_disposal", "revisar_casos_sin_tipoProcedimiento_definido"}
	if diff := cmp.Diff(wantBuckets, s.Buckets); diff != "" {
		t.Errorf("buckets mismatch (-want +got):\n%s", diff)
	}

	wantDetail := model.DetailedStats{
		NormalByCategory: map[string]int{"asset_disposal": 1},
		ReviewByCategory: map[string]int{"revisar_casos_sin_tipoProcedimiento_definido": 1},
	}
	if diff := cmp.Diff(wantDetail, s.Detail); diff != "" {
		t.Errorf("detail mismatch (-want +got):\n%s", diff)
	}

	if len(s.Errors) != 1 || !strings.HasPrefix(s.Errors[0], "Objeto 2: ") {
		t.Errorf("unexpected errors: %v", s.Errors)
	}
	if s.Criteria.ContractingPublic == "" || s.Criteria.Unclassified != "No coincide con ningún patrón conocido" {
		t.Errorf("unexpected criteria: %+v", s.Criteria)
	}
	if s.Criteria.Review != ReviewDescription {
		t.Errorf("unexpected review criteria: %s", s.Criteria.Review)
	}
	if len(s.Rules) != len(AppliedRules) {
		t.Errorf("expected %d rules, got %d", len(AppliedRules), len(s.Rules))
	}
}

func TestBuild_SummaryDocument(t *testing.T) {
	out, err := newTestBuilder().Build(process(t), "in", "out")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(out.Files[model.SummaryFile], &doc); err != nil {
		t.Fatalf("summary is not valid JSON: %v", err)
	}

	for _, key := range []string{
		"idEjecucion", "fechaGeneracion", "directorioOrigen", "directorioDestino",
		"totalArchivos", "clasificacion", "errores", "advertencias", "directoriosCreados",
		"criteriosClasificacion", "reglasAplicadas", "estadisticasDetalladas",
	} {
		if _, ok := doc[key]; !ok {
			t.Errorf("summary missing key %q", key)
		}
	}

	// empty lists are serialized as [] rather than null
	for _, key := range []string{"errores", "advertencias", "directoriosCreados"} {
		if list, ok := doc[key].([]any); !ok || len(list) != 0 {
			t.Errorf("expected empty list for %q, got %v", key, doc[key])
		}
	}

	counts := doc["clasificacion"].(map[string]any)
	if _, ok := counts[model.ReviewBucket]; !ok {
		t.Errorf("counts missing review key: %v", counts)
	}
}

func TestBuild_DuplicatePathsCountOnce(t *testing.T) {
	result := process(t,
		`{"id":"1","nombres":"ANA","primerApellido":"LOPEZ","tipoProcedimiento":[{"valor":"VENTA"}]}`,
		`{"id":"1","nombres":"ANA","primerApellido":"LOPEZ","observaciones":"segundo","tipoProcedimiento":[{"valor":"BIENES"}]}`,
	)

	out, err := newTestBuilder().Build(result, "in", "out")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if out.Summary.TotalFiles != 1 {
		t.Errorf("expected 1 distinct record file, got %d", out.Summary.TotalFiles)
	}
	if !bytes.Contains(out.Files["asset_disposal/1_ANA_LOPEZ.json"], []byte(`"segundo"`)) {
		t.Error("expected the later record to win the shared path")
	}
	if len(out.Summary.Warnings) != 1 {
		t.Errorf("expected 1 warning, got %v", out.Summary.Warnings)
	}
}

func TestBuild_RecordDocument(t *testing.T) {
	result := process(t,
		`{"id":"1","nombres":"ANA & <EVA>","primerApellido":"LOPEZ","tipoProcedimiento":[{"valor":"VENTA"}]}`,
	)

	out, err := newTestBuilder().Build(result, "in", "out")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	data := out.Files["asset_disposal/1_ANA_&_<EVA>_LOPEZ.json"]
	if data == nil {
		t.Fatalf("record file missing, have %v", out.Paths())
	}

	text := string(data)
	if !strings.Contains(text, `"nombres": "ANA & <EVA>"`) {
		t.Errorf("expected unescaped names with two-space indent:\n%s", text)
	}
	if strings.HasSuffix(text, "\n") {
		t.Error("document must not end with a newline")
	}

	order := []string{`"id"`, `"tipoProcedimineto"`, `"continuaParticipando"`, `"enajenacionBienes"`, `"_clasificacion"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(text, key)
		if idx < 0 {
			t.Fatalf("key %s missing:\n%s", key, text)
		}
		if idx < last {
			t.Errorf("key %s out of order", key)
		}
		last = idx
	}
	if strings.Contains(text, `"_metadata"`) {
		t.Error("accepted record must not carry _metadata")
	}
}

func TestBuild_Indent(t *testing.T) {
	result := process(t, `{"id":"1","nombres":"ANA","primerApellido":"LOPEZ"}`)

	out, err := NewBuilder(WithIndent(4)).Build(result, "in", "out")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !bytes.Contains(out.Files["unclassified/1_ANA_LOPEZ.json"], []byte("\n    \"id\": \"1\"")) {
		t.Errorf("expected four-space indent:\n%s", out.Files["unclassified/1_ANA_LOPEZ.json"])
	}
}

func TestOutput_Add(t *testing.T) {
	out, err := newTestBuilder().Build(process(t), "in", "out")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if err := out.Add(model.SuggestionsFile, []model.ReviewSuggestion{}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if string(out.Files[model.SuggestionsFile]) != "[]" {
		t.Errorf("unexpected content %q", out.Files[model.SuggestionsFile])
	}

	if err := out.Add("bad.json", make(chan int)); err == nil {
		t.Error("expected error for unencodable value")
	}
}

func TestMarshal(t *testing.T) {
	data, err := Marshal(map[string]string{"a": "<b>"}, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"a\": \"<b>\"\n}"
	if string(data) != want {
		t.Errorf("Marshal = %q, want %q", data, want)
	}
}
