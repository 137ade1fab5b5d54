// Package report assembles the output mapping of a conversion run: one JSON
// document per bucket item plus the processing summary.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ppiankov/reclasifica/internal/batch"
	"github.com/ppiankov/reclasifica/internal/classify"
	"github.com/ppiankov/reclasifica/internal/model"
)

// ReviewDescription describes the review bucket in the summary criteria
const ReviewDescription = "Objetos con múltiples tipos de procedimiento"

// AppliedRules is the fixed list of transformation rules reported in every summary
var AppliedRules = []string{
	"Campo 'tipoArea' convertido a 'nivelesResponsabilidad' con contenido del objeto original",
	"Campos 'no aplica' convertidos a campos vacíos",
	"Estructura específica generada según 'tipoProcedimiento'",
	"Clasificación automática según patrones de tipoProcedimiento",
	"Objetos con múltiples procedimientos enviados a '" + model.ReviewBucket + "'",
	"Organización: categoria/archivo.json",
}

// Output is the complete set of files produced by one run, keyed by
// relative slash-separated path
type Output struct {
	Files   map[string][]byte
	Summary model.Summary

	indent int
}

// Add serializes v under path, replacing any previous entry
func (o *Output) Add(path string, v any) error {
	data, err := Marshal(v, o.indent)
	if err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	o.Files[path] = data
	return nil
}

// Paths returns every output path in sorted order
func (o *Output) Paths() []string {
	paths := make([]string, 0, len(o.Files))
	for p := range o.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Builder turns a batch result into an Output
type Builder struct {
	clock  func() time.Time
	newID  func() string
	rules  []classify.Rule
	indent int
}

// Option configures a Builder
type Option func(*Builder)

// WithClock overrides the generation timestamp source
func WithClock(clock func() time.Time) Option {
	return func(b *Builder) {
		if clock != nil {
			b.clock = clock
		}
	}
}

// WithRunID overrides the run identifier generator
func WithRunID(newID func() string) Option {
	return func(b *Builder) {
		if newID != nil {
			b.newID = newID
		}
	}
}

// WithRules sets the rules whose descriptions fill the summary criteria
func WithRules(rules []classify.Rule) Option {
	return func(b *Builder) {
		if len(rules) > 0 {
			b.rules = rules
		}
	}
}

// WithIndent sets the JSON indentation width
func WithIndent(indent int) Option {
	return func(b *Builder) {
		if indent >= 0 {
			b.indent = indent
		}
	}
}

// NewBuilder creates a builder with a wall clock, random run IDs and the
// default classification rules
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		clock:  time.Now,
		newID:  uuid.NewString,
		rules:  classify.DefaultRules(),
		indent: 2,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build renders every bucket item and the summary. Items sharing a path
// overwrite each other in input order, so the last one wins.
func (b *Builder) Build(result *batch.Result, sourceDir, destDir string) (*Output, error) {
	out := &Output{Files: make(map[string][]byte), indent: b.indent}

	for _, category := range model.Categories() {
		for _, item := range result.Normal[category] {
			if err := out.Add(item.Path(category.String()), item.Record); err != nil {
				return nil, err
			}
		}
	}
	for _, bucket := range sortedKeys(result.Review) {
		for _, item := range result.Review[bucket] {
			if err := out.Add(item.Path(bucket), item.Record); err != nil {
				return nil, err
			}
		}
	}

	out.Summary = b.Summary(result, sourceDir, destDir, len(out.Files))
	if err := out.Add(model.SummaryFile, out.Summary); err != nil {
		return nil, err
	}

	return out, nil
}

// Summary builds the processing summary. totalFiles is the number of record
// files in the output mapping.
func (b *Builder) Summary(result *batch.Result, sourceDir, destDir string, totalFiles int) model.Summary {
	normal := make(map[string]int)
	review := make(map[string]int)
	buckets := make(map[string]bool)

	for category, items := range result.Normal {
		normal[category.String()] = len(items)
		buckets[category.String()] = true
	}
	for bucket, items := range result.Review {
		review[bucket] = len(items)
		buckets[bucket] = true
	}

	return model.Summary{
		RunID:       b.newID(),
		GeneratedAt: model.Timestamp(b.clock()),
		SourceDir:   sourceDir,
		DestDir:     destDir,
		TotalFiles:  totalFiles,
		Counts:      result.CategoryCounts(),
		Errors:      nonNil(result.Errors),
		Warnings:    nonNil(result.Warnings),
		Buckets:     sortedKeys(buckets),
		Criteria:    b.criteria(),
		Rules:       append([]string(nil), AppliedRules...),
		Detail: model.DetailedStats{
			NormalByCategory: normal,
			ReviewByCategory: review,
		},
	}
}

func (b *Builder) criteria() model.CategoryCriteria {
	c := model.CategoryCriteria{
		Unclassified: classify.UnclassifiedDescription,
		Review:       ReviewDescription,
	}
	for _, r := range b.rules {
		switch r.Category {
		case model.CategoryContractingPublic:
			c.ContractingPublic = r.Description
		case model.CategoryConcessionGrant:
			c.ConcessionGrant = r.Description
		case model.CategoryAssetDisposal:
			c.AssetDisposal = r.Description
		case model.CategoryAppraisalRuling:
			c.AppraisalRuling = r.Description
		}
	}
	return c
}

// Marshal encodes v as indented JSON without HTML escaping and without a
// trailing newline
func Marshal(v any, indent int) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", strings.Repeat(" ", indent))
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
