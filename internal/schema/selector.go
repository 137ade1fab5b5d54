// Package schema maps raw disclosure records onto the normalized target
// schemas. The procedure-type label picks one of five variants through a
// fixed lookup table; labels outside the table use the generic variant.
package schema

import (
	"strings"

	"github.com/ppiankov/reclasifica/internal/model"
)

// Variant identifies a target schema
type Variant int

const (
	VariantGeneric Variant = iota
	VariantContractingPublic
	VariantConcessionGrant
	VariantAssetDisposal
	VariantAppraisalRuling
)

func (v Variant) String() string {
	switch v {
	case VariantContractingPublic:
		return "contracting_public"
	case VariantConcessionGrant:
		return "concession_grant"
	case VariantAssetDisposal:
		return "asset_disposal"
	case VariantAppraisalRuling:
		return "appraisal_ruling"
	default:
		return "generic"
	}
}

// Procedure-type labels with a dedicated schema. Matching is exact.
const (
	LabelContractingPublic = "Contrataciones Públicas"
	LabelConcessionGrant   = "Otorgamiento de Concesiones"
	LabelAssetDisposal     = "Enajenación de Bienes"
	LabelAppraisalRuling   = "Avalúos y Justipreciación"
)

// GenericTypeUnspecified is the generic schema type when no label is declared
const GenericTypeUnspecified = "No especificado"

// ConcessionActType is the fixed act type of every concession
const ConcessionActType = "CONCESIÓN"

type builder func(rec *model.RawRecord, label string) model.Sections

var variantByLabel = map[string]Variant{
	LabelContractingPublic: VariantContractingPublic,
	LabelConcessionGrant:   VariantConcessionGrant,
	LabelAssetDisposal:     VariantAssetDisposal,
	LabelAppraisalRuling:   VariantAppraisalRuling,
}

var builders = map[Variant]builder{
	VariantContractingPublic: buildContractingPublic,
	VariantConcessionGrant:   buildConcessionGrant,
	VariantAssetDisposal:     buildAssetDisposal,
	VariantAppraisalRuling:   buildAppraisalRuling,
	VariantGeneric:           buildGeneric,
}

// VariantFor returns the schema variant for a procedure-type label
func VariantFor(label string) Variant {
	if v, ok := variantByLabel[label]; ok {
		return v
	}
	return VariantGeneric
}

// Select builds the transformed record for rec using label to choose the
// variant section. Classification and review annotations are left unset.
func Select(rec *model.RawRecord, label string) (model.TransformedRecord, Variant) {
	variant := VariantFor(label)
	return model.TransformedRecord{
		Common:   buildCommon(rec),
		Sections: builders[variant](rec, label),
	}, variant
}

// Transform builds the transformed record using the first declared
// procedure type, or the generic variant when none is declared
func Transform(rec *model.RawRecord) (model.TransformedRecord, Variant) {
	return Select(rec, rec.FirstProcedureLabel())
}

// ResponsibilityLevels converts the raw area-type and responsibility-level
// lists into the common responsibility summary. Only the first element of
// each list is used.
func ResponsibilityLevels(areaTypes, levels []model.CodeLabel) model.ResponsibilitySummary {
	var out model.ResponsibilitySummary
	if len(areaTypes) > 0 {
		out.AreaType = ptr(areaTypes[0].Label.String())
		out.AreaTypeCode = ptr(areaTypes[0].Code.String())
	}
	if len(levels) > 0 {
		out.Level = ptr(levels[0].Label.String())
		out.LevelCode = ptr(levels[0].Code.String())
	}
	return out
}

func buildCommon(rec *model.RawRecord) model.Common {
	return model.Common{
		ID:                   rec.ID.String(),
		CaptureDate:          rec.CaptureDate.String(),
		FiscalYear:           rec.FiscalYear.String(),
		Branch:               codeLabel(rec.Branch),
		TaxID:                rec.TaxID.String(),
		PopulationID:         rec.PopulationID.String(),
		GivenName:            rec.GivenName.String(),
		FirstSurname:         rec.FirstSurname.String(),
		SecondSurname:        rec.SecondSurname.String(),
		Gender:               codeLabel(rec.Gender),
		Institution:          institution(rec.Institution),
		Position:             position(rec.Position),
		ResponsibilityLevels: ResponsibilityLevels(rec.AreaTypes, rec.ResponsibilityLevels),
		Observations:         rec.Observations.String(),
		Employment: model.Employment{
			Title: rec.PositionName(),
			Unit:  rec.InstitutionName(),
		},
		ProcedureType:    rec.FirstProcedureLabel(),
		Superior:         superior(rec.Superior),
		StillParticipate: true,
	}
}

func buildContractingPublic(rec *model.RawRecord, label string) model.Sections {
	return model.Sections{ContractingPublic: &model.ContractingPublic{
		ProcedureSubtypes: []string{},
		Acquisitions: model.ContractAcquisitions{
			AreaType:     first(rec.AreaTypes),
			AreaTypeCode: firstCode(rec.AreaTypes),
			Stages: model.AcquisitionStages{
				RulingAuthorization: first(rec.ResponsibilityLevels),
			},
			GeneralData: []model.WorksProcedure{},
		},
		Works: model.ContractWorks{
			AreaType:   first(rec.AreaTypes),
			WorksValue: firstCode(rec.AreaTypes),
			Stages: model.WorksStages{
				RulingAuthorization: first(rec.ResponsibilityLevels),
			},
			GeneralData: model.WorksProcedure{
				ProcedureType: label,
				StartDate:     rec.CaptureDate.String(),
			},
		},
	}}
}

func buildConcessionGrant(rec *model.RawRecord, _ string) model.Sections {
	return model.Sections{ConcessionGrant: &model.ConcessionGrant{
		Concession: model.Concession{
			ActType: ConcessionActType,
			Stages: model.ConcessionStages{
				TenderCall: first(rec.ResponsibilityLevels),
			},
			GeneralData: model.ConcessionProcedure{
				Denomination:           rec.PositionName(),
				RequesterGivenName:     rec.GivenName.String(),
				RequesterFirstSurname:  rec.FirstSurname.String(),
				RequesterSecondSurname: rec.SecondSurname.String(),
				LegalEntityName:        rec.InstitutionName(),
				ValidFrom:              rec.CaptureDate.String(),
			},
			Beneficiaries: model.FinalBeneficiaries{
				CompanyName:   rec.InstitutionName(),
				GivenName:     rec.GivenName.String(),
				FirstSurname:  rec.FirstSurname.String(),
				SecondSurname: rec.SecondSurname.String(),
			},
		},
	}}
}

func buildAssetDisposal(rec *model.RawRecord, _ string) model.Sections {
	return model.Sections{AssetDisposal: &model.AssetDisposal{
		Disposal: model.Disposal{
			Stages: model.DisposalStages{
				RulingAuthorizations: first(rec.ResponsibilityLevels),
			},
			GeneralData: describedProcedure(rec),
		},
	}}
}

func buildAppraisalRuling(rec *model.RawRecord, _ string) model.Sections {
	return model.Sections{AppraisalRuling: &model.AppraisalRuling{
		Appraisal: model.Appraisal{
			Stages: model.AppraisalStages{
				AssignmentProposals: first(rec.ResponsibilityLevels),
			},
			GeneralData: describedProcedure(rec),
		},
	}}
}

func buildGeneric(rec *model.RawRecord, label string) model.Sections {
	typ := label
	if typ == "" {
		typ = GenericTypeUnspecified
	}
	return model.Sections{Generic: &model.Generic{
		Structure: model.GenericStructure{
			Type: typ,
			GeneralData: model.GenericGeneralData{
				StartDate:   rec.CaptureDate.String(),
				Description: rec.PositionName(),
			},
			Responsibility: model.GenericResponsibility{
				Level:    first(rec.ResponsibilityLevels),
				AreaType: first(rec.AreaTypes),
			},
			Beneficiaries: model.GenericBeneficiaries{
				GivenName:   rec.GivenName.String(),
				Surnames:    strings.TrimSpace(rec.FirstSurname.String() + " " + rec.SecondSurname.String()),
				Institution: rec.InstitutionName(),
			},
		},
	}}
}

func describedProcedure(rec *model.RawRecord) model.DescribedProcedure {
	return model.DescribedProcedure{
		Description: rec.PositionName(),
		StartDate:   rec.CaptureDate.String(),
	}
}
