package model

// Sections holds the procedure-specific part of a transformed record. The
// schema selector sets exactly one of the embedded variants; nil variants are
// left out of the serialized output.
type Sections struct {
	*ContractingPublic
	*ConcessionGrant
	*AssetDisposal
	*AppraisalRuling
	*Generic
}

// FinalBeneficiaries identifies who ultimately benefits from the procedure
type FinalBeneficiaries struct {
	CompanyName   string `json:"razonSocial"`
	GivenName     string `json:"nombre"`
	FirstSurname  string `json:"primerApellido"`
	SecondSurname string `json:"segundoApellido"`
}

// ContractingPublic covers public procurement of goods, services and works
type ContractingPublic struct {
	ProcedureSubtypes []string             `json:"tipoContratacion"`
	Acquisitions      ContractAcquisitions `json:"contratacionAdquisiones"`
	Works             ContractWorks        `json:"contratacionObra"`
}

// AcquisitionStages are the six approval stages of an acquisition
type AcquisitionStages struct {
	RulingAuthorization   string `json:"autorizacionDictamen"`
	TenderJustification   string `json:"justificacionLicitacion"`
	Call                  string `json:"convocatoriaInvitacion"`
	ProposalEvaluation    string `json:"evaluacionProposiciones"`
	ContractAward         string `json:"adjudicacionContrato"`
	ContractFormalization string `json:"formalizacionContrato"`
}

// WorksStages are the six approval stages of a public works contract. The
// tender justification key is spelled as downstream consumers expect it.
type WorksStages struct {
	RulingAuthorization   string `json:"autorizacionDictamen"`
	TenderJustification   string `json:"justificacionLicictacion"`
	Call                  string `json:"convocatoriaInvitacion"`
	ProposalEvaluation    string `json:"evaluacionProposiciones"`
	ContractAward         string `json:"adjudicacionContrato"`
	ContractFormalization string `json:"formalizacionContrato"`
}

// ContractAcquisitions is the acquisitions half of ContractingPublic
type ContractAcquisitions struct {
	AreaType      string             `json:"tipoArea"`
	AreaTypeCode  string             `json:"valorTipoArea"`
	Stages        AcquisitionStages  `json:"nivelesResponsabilidad"`
	GeneralData   []WorksProcedure   `json:"datosGeneralesProcedimientos"`
	Beneficiaries FinalBeneficiaries `json:"datosBeneficiariosFinales"`
}

// WorksProcedure is the general data block of a works contracting procedure
type WorksProcedure struct {
	FileNumber     string `json:"numeroExpedienteFolio"`
	ProcedureType  string `json:"tipoProcedimiento"`
	OtherProcedure string `json:"otroTipoProcedimiento"`
	Subject        string `json:"materia"`
	OtherSubject   string `json:"otroMateria"`
	StartDate      string `json:"fechaInicioProcedimiento"`
	ConclusionDate string `json:"fechaConclusionProcedimiento"`
}

// ContractWorks is the public works half of ContractingPublic
type ContractWorks struct {
	AreaType      string             `json:"tipoArea"`
	WorksValue    string             `json:"valorContratacionObra"`
	Stages        WorksStages        `json:"nivelesResponsabilidad"`
	GeneralData   WorksProcedure     `json:"datosGeneralesProcedimientos"`
	Beneficiaries FinalBeneficiaries `json:"datosBeneficiariosFinales"`
}

// ConcessionGrant covers concessions, licences, permits and their extensions
type ConcessionGrant struct {
	Concession Concession `json:"otorgamientoConcesiones"`
}

// ConcessionStages are the five approval stages of a concession
type ConcessionStages struct {
	TenderCall           string `json:"convocatoriaLicitacion"`
	Opinions             string `json:"dictamenesOpiniones"`
	InspectionVisits     string `json:"visitasVerificacion"`
	ComplianceEvaluation string `json:"evaluacionCumplimiento"`
	GrantDetermination   string `json:"determinacionOtorgamiento"`
}

// ConcessionProcedure is the general data block of a concession
type ConcessionProcedure struct {
	FileNumber             string `json:"numeroExpedienteFolio"`
	Denomination           string `json:"denominacion"`
	Object                 string `json:"objeto"`
	LegalBasis             string `json:"fundamento"`
	RequesterGivenName     string `json:"nombrePersonaSolicitaOtorga"`
	RequesterFirstSurname  string `json:"primerApellidoSolicitaOtorga"`
	RequesterSecondSurname string `json:"segundoApellidoSolicitaOtorga"`
	LegalEntityName        string `json:"denominacionPersonaMoral"`
	Sector                 string `json:"sectorActo"`
	ValidFrom              string `json:"fechaInicioVigencia"`
	ValidUntil             string `json:"fechaConclusionVigencia"`
	Amount                 string `json:"monto"`
	InformationURL         string `json:"urlInformacionActo"`
}

// Concession is the body of ConcessionGrant
type Concession struct {
	ActType       string              `json:"tipoActo"`
	Stages        ConcessionStages    `json:"nivelesResponsabilidad"`
	GeneralData   ConcessionProcedure `json:"datosGeneralesProcedimientos"`
	Beneficiaries FinalBeneficiaries  `json:"datosBeneficiariosFinales"`
}

// DescribedProcedure is the general data block shared by asset disposal and
// appraisal rulings
type DescribedProcedure struct {
	FileNumber     string `json:"numeroExpedienteFolio"`
	Description    string `json:"descripcion"`
	StartDate      string `json:"fechaInicioProcedimiento"`
	ConclusionDate string `json:"fechaConclusionProcedimiento"`
}

// AssetDisposal covers the sale or disposal of movable assets
type AssetDisposal struct {
	Disposal Disposal `json:"enajenacionBienes"`
}

// DisposalStages are the seven approval stages of an asset disposal
type DisposalStages struct {
	RulingAuthorizations  string `json:"autorizacionesDictamenes"`
	AuthorizationReview   string `json:"analisisAutorizacion"`
	TermsAmendment        string `json:"modificacionBases"`
	OfferSubmission       string `json:"presentacionOfertas"`
	OfferEvaluation       string `json:"evaluacionOfertas"`
	AssetAward            string `json:"adjudicacionBienes"`
	ContractFormalization string `json:"formalizacionContrato"`
}

// Disposal is the body of AssetDisposal
type Disposal struct {
	Stages      DisposalStages     `json:"nivelesResponsabilidad"`
	GeneralData DescribedProcedure `json:"datosGeneralesProcedimientos"`
}

// AppraisalRuling covers valuation rulings and rent appraisals
type AppraisalRuling struct {
	Appraisal Appraisal `json:"dictaminacionAvaluos"`
}

// AppraisalStages are the three approval stages of an appraisal
type AppraisalStages struct {
	AssignmentProposals string `json:"propuestasAsignaciones"`
	AppraisalAssignment string `json:"asignacionAvaluos"`
	RulingIssuance      string `json:"emisionDictamenes"`
}

// Appraisal is the body of AppraisalRuling
type Appraisal struct {
	Stages      AppraisalStages    `json:"nivelesResponsabilidad"`
	GeneralData DescribedProcedure `json:"datosGeneralesProcedimientos"`
}

// Generic is the fallback for procedure types without a dedicated schema
type Generic struct {
	Structure GenericStructure `json:"estructuraGenerica"`
}

// GenericStructure is the body of Generic
type GenericStructure struct {
	Type           string                `json:"tipo"`
	GeneralData    GenericGeneralData    `json:"datosGenerales"`
	Responsibility GenericResponsibility `json:"nivelesResponsabilidad"`
	Beneficiaries  GenericBeneficiaries  `json:"datosBeneficiarios"`
}

// GenericGeneralData is the general data block of the generic schema
type GenericGeneralData struct {
	StartDate   string `json:"fechaInicio"`
	Description string `json:"descripcion"`
}

// GenericResponsibility carries the first level and area type values
type GenericResponsibility struct {
	Level    string `json:"nivel"`
	AreaType string `json:"tipoArea"`
}

// GenericBeneficiaries identifies the declarant in the generic schema
type GenericBeneficiaries struct {
	GivenName   string `json:"nombre"`
	Surnames    string `json:"apellidos"`
	Institution string `json:"institucion"`
}
