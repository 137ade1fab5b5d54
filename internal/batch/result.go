package batch

import "github.com/ppiankov/reclasifica/internal/model"

// Status is the outcome kind of one input record
type Status int

const (
	StatusAccepted Status = iota // classified into a category bucket
	StatusFlagged                // placed in the review bucket
	StatusRejected               // excluded from every output
)

func (s Status) String() string {
	switch s {
	case StatusAccepted:
		return "accepted"
	case StatusFlagged:
		return "flagged"
	default:
		return "rejected"
	}
}

// Outcome is what happened to one input record
type Outcome struct {
	Index  int
	Status Status
	Bucket string // category or review bucket; empty when rejected
	File   string // output file name; empty when rejected
	Err    error  // set when rejected
}

// Item is one output file within a bucket
type Item struct {
	File   string
	Record model.TransformedRecord
}

// Path returns the output path of the item inside bucket
func (i Item) Path(bucket string) string {
	return bucket + "/" + i.File
}

// Result accumulates the outcome of a batch pass. It is built by a single
// Process call and read-only afterwards.
type Result struct {
	Total    int
	Outcomes []Outcome

	// Normal maps a category to its items in input order
	Normal map[model.Category][]Item
	// Review maps the review bucket name to its items in input order
	Review map[string][]Item

	Counts   map[model.Category]int
	Reviewed int

	Errors   []string
	Warnings []string
}

func newResult(total int) *Result {
	counts := make(map[model.Category]int, len(model.Categories()))
	for _, c := range model.Categories() {
		counts[c] = 0
	}
	return &Result{
		Total:    total,
		Outcomes: make([]Outcome, 0, total),
		Normal:   make(map[model.Category][]Item),
		Review:   make(map[string][]Item),
		Counts:   counts,
		Errors:   []string{},
		Warnings: []string{},
	}
}

// Accepted returns the number of classified records
func (r *Result) Accepted() int {
	return r.count(StatusAccepted)
}

// Flagged returns the number of records sent to review
func (r *Result) Flagged() int {
	return r.count(StatusFlagged)
}

// Rejected returns the number of records excluded from output
func (r *Result) Rejected() int {
	return r.count(StatusRejected)
}

func (r *Result) count(status Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// CategoryCounts converts the counters into the summary layout
func (r *Result) CategoryCounts() model.CategoryCounts {
	return model.CategoryCounts{
		ContractingPublic: r.Counts[model.CategoryContractingPublic],
		ConcessionGrant:   r.Counts[model.CategoryConcessionGrant],
		AssetDisposal:     r.Counts[model.CategoryAssetDisposal],
		AppraisalRuling:   r.Counts[model.CategoryAppraisalRuling],
		Unclassified:      r.Counts[model.CategoryUnclassified],
		Review:            r.Reviewed,
	}
}
