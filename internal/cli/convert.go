package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ppiankov/reclasifica/internal/batch"
	"github.com/ppiankov/reclasifica/internal/cache"
	"github.com/ppiankov/reclasifica/internal/classify"
	"github.com/ppiankov/reclasifica/internal/llm"
	"github.com/ppiankov/reclasifica/internal/loader"
	"github.com/ppiankov/reclasifica/internal/model"
	"github.com/ppiankov/reclasifica/internal/report"
	"github.com/ppiankov/reclasifica/internal/writer"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// conversion is everything the console report needs about one run
type conversion struct {
	source      string
	dest        string
	files       int
	skipped     int
	records     int
	written     int
	result      *batch.Result
	output      *report.Output
	suggestions int
	llmWarnings []string
}

func runConvert(cmd *cobra.Command, args []string) error {
	source, dest := args[0], args[1]
	out := cmd.ErrOrStderr()

	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(out, "  Reclasifica\n")
	fmt.Fprintf(out, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "  Source:       %s\n", source)
	fmt.Fprintf(out, "  Destination:  %s\n", dest)
	fmt.Fprintf(out, "\n")

	if info, err := os.Stat(source); err != nil || !info.IsDir() {
		return fmt.Errorf("source directory does not exist: %s", source)
	}

	// 1. Load
	fmt.Fprintf(out, "⚙️  Reading JSON files...\n")
	loaded, err := loader.New(cfg.Loader.IgnoreFile, logger).Load(source)
	if err != nil {
		return fmt.Errorf("load source: %w", err)
	}
	if len(loaded.Records) == 0 {
		fmt.Fprintf(out, "⚠️  No JSON records found in %s\n\n", source)
		return nil
	}
	if cfg.Output.Verbose {
		for _, file := range loaded.Files {
			fmt.Fprintf(out, "  ✓ Read %s\n", file)
		}
		for _, file := range loaded.Skipped {
			fmt.Fprintf(out, "  ✗ Skipped %s\n", file)
		}
	}
	fmt.Fprintf(out, "✓ Found %d records in %d files\n", len(loaded.Records), len(loaded.Files))

	// 2. Prepare destination
	w := writer.New(logger)
	if err := w.Prepare(dest, cfg.Output.Clean); err != nil {
		return err
	}

	// 3. Convert
	fmt.Fprintf(out, "⚙️  Converting records...\n")
	classifier := newClassifier()
	processor := batch.NewProcessor(classifier, batch.WithLogger(logger))
	result := processor.Process(loaded.Records)
	if cached, ok := classifier.(*classify.Cached); ok {
		logger.Debug("Classification cache", zap.Int("hits", cached.Hits()), zap.Int("accepted", result.Accepted()))
	}

	// 4. Render
	builder := report.NewBuilder(report.WithIndent(cfg.Output.Indent))
	output, err := builder.Build(result, source, dest)
	if err != nil {
		return fmt.Errorf("render output: %w", err)
	}

	run := &conversion{
		source:  source,
		dest:    dest,
		files:   len(loaded.Files),
		skipped: len(loaded.Skipped),
		records: len(loaded.Records),
		result:  result,
		output:  output,
	}

	// 5. Optional review suggestions
	if err := suggestReviews(cmd, run); err != nil {
		return err
	}

	// 6. Write
	fmt.Fprintf(out, "⚙️  Writing files...\n")
	written := w.Write(output.Files, dest)
	run.written = len(written)
	if cfg.Output.Verbose {
		for _, rel := range written {
			fmt.Fprintf(out, "  📄 Created %s\n", rel)
		}
	}

	printReport(out, run)
	return nil
}

func newClassifier() classify.Classifier {
	keywords := classify.NewKeywordClassifier(nil)
	if !cfg.Cache.Enabled {
		return keywords
	}
	return classify.NewCached(keywords, cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute))
}

// suggestReviews runs the LLM advisor over the review bucket when enabled.
// Advisor failures are reported as warnings and never stop the run.
func suggestReviews(cmd *cobra.Command, run *conversion) error {
	items := run.result.Review[model.ReviewBucket]
	if len(items) == 0 {
		return nil
	}

	advisor, err := llm.NewAdvisor(llm.ConfigFromModel(cfg.LLM), logger)
	if err != nil {
		run.llmWarnings = append(run.llmWarnings, err.Error())
		logger.Warn("LLM advisor unavailable", zap.Error(err))
		return nil
	}
	if !advisor.IsEnabled() {
		return nil
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "⚙️  Requesting review suggestions (%s/%s)...\n", advisor.ProviderName(), cfg.LLM.Model)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	suggestions, warnings, err := advisor.Review(ctx, items)
	run.llmWarnings = append(run.llmWarnings, warnings...)
	if err != nil {
		run.llmWarnings = append(run.llmWarnings, err.Error())
		logger.Warn("Review suggestions interrupted", zap.Error(err))
	}
	if len(suggestions) == 0 {
		return nil
	}

	run.suggestions = len(suggestions)
	return run.output.Add(model.SuggestionsFile, suggestions)
}

// printReport writes the console summary of a run
func printReport(out io.Writer, run *conversion) {
	result := run.result
	counts := result.CategoryCounts()

	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(out, "  Conversion Complete\n")
	fmt.Fprintf(out, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "  Records:      %d (%d files read, %d skipped)\n", run.records, run.files, run.skipped)
	fmt.Fprintf(out, "  Accepted:     %d\n", result.Accepted())
	fmt.Fprintf(out, "  For review:   %d\n", result.Flagged())
	fmt.Fprintf(out, "  Rejected:     %d\n", result.Rejected())
	fmt.Fprintf(out, "  Written:      %d files\n", run.written)
	fmt.Fprintf(out, "  Output:       %s\n", run.dest)
	fmt.Fprintf(out, "\n")

	fmt.Fprintf(out, "Classification by procedure type:\n")
	fmt.Fprintf(out, "  %-45s %d\n", model.CategoryContractingPublic, counts.ContractingPublic)
	fmt.Fprintf(out, "  %-45s %d\n", model.CategoryConcessionGrant, counts.ConcessionGrant)
	fmt.Fprintf(out, "  %-45s %d\n", model.CategoryAssetDisposal, counts.AssetDisposal)
	fmt.Fprintf(out, "  %-45s %d\n", model.CategoryAppraisalRuling, counts.AppraisalRuling)
	fmt.Fprintf(out, "  %-45s %d\n", model.CategoryUnclassified, counts.Unclassified)
	fmt.Fprintf(out, "  %-45s %d\n", model.ReviewBucket, counts.Review)
	fmt.Fprintf(out, "\n")

	if len(run.output.Summary.Buckets) > 0 {
		fmt.Fprintf(out, "Directories created:\n")
		for _, bucket := range run.output.Summary.Buckets {
			if n, ok := run.output.Summary.Detail.ReviewByCategory[bucket]; ok {
				fmt.Fprintf(out, "  %s/ (%d files, require review)\n", bucket, n)
				continue
			}
			fmt.Fprintf(out, "  %s/ (%d files)\n", bucket, run.output.Summary.Detail.NormalByCategory[bucket])
		}
		fmt.Fprintf(out, "\n")
	}

	if len(result.Errors) > 0 {
		fmt.Fprintf(out, "✗ Errors: %d\n", len(result.Errors))
		for i, msg := range result.Errors {
			if i >= 5 {
				fmt.Fprintf(out, "  ... and %d more (see %s)\n", len(result.Errors)-5, model.SummaryFile)
				break
			}
			fmt.Fprintf(out, "  • %s\n", msg)
		}
		fmt.Fprintf(out, "\n")
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintf(out, "⚠️  Warnings: %d\n\n", len(result.Warnings))
	}

	if run.suggestions > 0 || len(run.llmWarnings) > 0 {
		fmt.Fprintf(out, "Review suggestions: %d written to %s\n", run.suggestions, model.SuggestionsFile)
		for _, msg := range run.llmWarnings {
			fmt.Fprintf(out, "  ⚠️  %s\n", msg)
		}
		fmt.Fprintf(out, "\n")
	}

	fmt.Fprintf(out, "✓ See %s for full details\n", model.SummaryFile)
	fmt.Fprintf(out, "\n")

	fmt.Fprintf(out, "Classification criteria:\n")
	for _, rule := range classify.DefaultRules() {
		fmt.Fprintf(out, "  • %s: %s\n", rule.Category, rule.Description)
	}
	fmt.Fprintf(out, "  • %s: %s\n", model.CategoryUnclassified, classify.UnclassifiedDescription)
	fmt.Fprintf(out, "  • %s: %s\n", model.ReviewBucket, report.ReviewDescription)
	fmt.Fprintf(out, "\n")
}
