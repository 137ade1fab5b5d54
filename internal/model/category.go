package model

// Category identifies a classification bucket
type Category string

const (
	CategoryContractingPublic Category = "contracting_public" // Public procurement, tenders, awards
	CategoryConcessionGrant   Category = "concession_grant"   // Concessions, licences, permits
	CategoryAssetDisposal     Category = "asset_disposal"     // Sale/disposal of movable assets
	CategoryAppraisalRuling   Category = "appraisal_ruling"   // Valuation rulings, rent appraisals
	CategoryUnclassified      Category = "unclassified"       // No keyword matched
)

// ReviewBucket is the output directory for records declaring more than one
// procedure type
const ReviewBucket = "revisar_casos_sin_tipoProcedimiento_definido"

// SummaryFile is the reserved output name of the processing summary
const SummaryFile = "_resumen_procesamiento.json"

// Categories lists every category in classification priority order
func Categories() []Category {
	return []Category{
		CategoryContractingPublic,
		CategoryConcessionGrant,
		CategoryAssetDisposal,
		CategoryAppraisalRuling,
		CategoryUnclassified,
	}
}

func (c Category) String() string {
	return string(c)
}
