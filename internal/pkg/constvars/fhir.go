package constvars

const (
	ResourcePatient          = "Patient"
	ResourcePractitioner     = "Practitioner"
	ResourcePractitionerRole = "PractitionerRole"
	ResourceOrganization     = "Organization"
	ResourceServiceRequest   = "ServiceRequest"
	ResourceOperationOutcome = "OperationOutcome"
	ResourceBundle           = "Bundle"
)

const (
	FhirSystemSnomed     = "http://snomed.info/sct"
	FhirSystemV2Table203 = "http://terminology.hl7.org/CodeSystem/v2-0203"
	FhirSystemAUHPIO     = "http://hl7.org.au/id/hpio"
)

const (
	FhirIdentifierTypePlacerGroup        = "PGN"
	FhirIdentifierTypePlacerGroupDisplay = "Placer Group Identifier"
)

const (
	FhirBundleEntrySearchModeMatch   = "match"
	FhirBundleEntrySearchModeInclude = "include"
)
