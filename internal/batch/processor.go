// Package batch runs the single synchronous pass that validates, maps and
// classifies every raw record and groups the results into output buckets.
package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/ppiankov/reclasifica/internal/classify"
	"github.com/ppiankov/reclasifica/internal/model"
	"github.com/ppiankov/reclasifica/internal/schema"
	"github.com/ppiankov/reclasifica/internal/validate"
	"go.uber.org/zap"
)

// Clock supplies the timestamps written into tags and annotations
type Clock func() time.Time

// Processor converts raw records into bucketed transformed records
type Processor struct {
	classifier classify.Classifier
	clock      Clock
	logger     *zap.Logger
}

// Option configures a Processor
type Option func(*Processor)

// WithClock overrides the timestamp source
func WithClock(clock Clock) Option {
	return func(p *Processor) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(logger *zap.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewProcessor creates a processor. A nil classifier uses the default keyword rules.
func NewProcessor(classifier classify.Classifier, opts ...Option) *Processor {
	if classifier == nil {
		classifier = classify.NewKeywordClassifier(nil)
	}

	p := &Processor{
		classifier: classifier,
		clock:      time.Now,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process runs one pass over inputs. Every input yields exactly one outcome;
// a failing record is recorded as rejected and never stops the pass.
func (p *Processor) Process(inputs []json.RawMessage) *Result {
	result := newResult(len(inputs))
	paths := make(map[string]int)

	for i, data := range inputs {
		outcome := p.processRecord(i, data, result)
		result.Outcomes = append(result.Outcomes, outcome)

		if outcome.Status == StatusRejected {
			msg := fmt.Sprintf("Objeto %d: %v", i, outcome.Err)
			result.Errors = append(result.Errors, msg)
			fields := []zap.Field{zap.Int("index", i), zap.Error(outcome.Err)}
			var missing *validate.MissingFieldsError
			if errors.As(outcome.Err, &missing) {
				fields = append(fields, zap.String("missing", missing.Detail()))
			}
			p.logger.Warn("Record rejected", fields...)
			continue
		}

		path := outcome.Bucket + "/" + outcome.File
		if prev, exists := paths[path]; exists {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Objeto %d: ruta duplicada %s (sobrescribe objeto %d)", i, path, prev))
			p.logger.Warn("Duplicate output path", zap.String("path", path), zap.Int("index", i), zap.Int("previous", prev))
		}
		paths[path] = i
	}

	p.logger.Debug("Batch processed",
		zap.Int("total", result.Total),
		zap.Int("accepted", result.Accepted()),
		zap.Int("flagged", result.Flagged()),
		zap.Int("rejected", result.Rejected()))

	return result
}

// processRecord handles one input. Panics raised while mapping are turned
// into a rejected outcome so the rest of the batch still runs.
func (p *Processor) processRecord(index int, data json.RawMessage, result *Result) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = Outcome{Index: index, Status: StatusRejected, Err: fmt.Errorf("%v", r)}
		}
	}()

	rec, err := model.DecodeRecord(data)
	if err != nil {
		return Outcome{Index: index, Status: StatusRejected, Err: err}
	}

	if err := validate.Record(&rec); err != nil {
		return Outcome{Index: index, Status: StatusRejected, Err: err}
	}

	multipleTypes := len(rec.ProcedureTypes) > 1
	transformed, variant := schema.Transform(&rec)
	file := FileName(&rec, index)
	now := model.Timestamp(p.clock())

	if multipleTypes {
		labels := rec.ProcedureLabels()
		transformed.Review = &model.ReviewAnnotation{
			RequiresReview: true,
			Reason:         "Múltiples tipos de procedimiento: " + strings.Join(labels, ", "),
			ProcessedAt:    now,
			DetectedLabels: labels,
		}

		result.Review[model.ReviewBucket] = append(result.Review[model.ReviewBucket], Item{File: file, Record: transformed})
		result.Reviewed++

		p.logger.Debug("Record flagged for review",
			zap.Int("index", index),
			zap.Strings("labels", labels))

		return Outcome{Index: index, Status: StatusFlagged, Bucket: model.ReviewBucket, File: file}
	}

	label := rec.FirstProcedureLabel()
	category := p.classifier.Classify(label)
	transformed.Classification = &model.ClassificationTag{
		Category:      category,
		OriginalLabel: label,
		ClassifiedAt:  now,
	}

	result.Normal[category] = append(result.Normal[category], Item{File: file, Record: transformed})
	result.Counts[category]++

	p.logger.Debug("Record classified",
		zap.Int("index", index),
		zap.String("category", category.String()),
		zap.Stringer("schema", variant))

	return Outcome{Index: index, Status: StatusAccepted, Bucket: category.String(), File: file}
}

// FileName builds the deterministic output name
// {id-or-index}_{given names with whitespace runs as "_"}_{first surname}.json
func FileName(rec *model.RawRecord, index int) string {
	id := rec.ID.Or(strconv.Itoa(index))
	return id + "_" + underscoreSpaces(rec.GivenName.String()) + "_" + rec.FirstSurname.String() + ".json"
}

func underscoreSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('_')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
