package constvars

const (
	ServiceRequestProfileAUDiagnosticRequest = "http://hl7.org.au/fhir/StructureDefinition/au-diagnosticrequest"

	// ServiceRequestRequisitionSystemFormat scopes the placer group identifier to the placer's HPI-O.
	ServiceRequestRequisitionSystemFormat = "http://ns.electronichealth.net.au/id/hpio-scoped/order/1.0/%s"

	ServiceRequestPlacerGroupPrefix = "ORD"
	// ServiceRequestHPIOPrefixLength is the number of leading HPI-O characters dropped
	// from the placer group identifier.
	ServiceRequestHPIOPrefixLength    = 11
	ServiceRequestPlacerGroupRandLen  = 5
	ServiceRequestAuthoredOnLayout    = "2006-01-02T15:04:05.000Z07:00"
	ServiceRequestIncludeSubject      = "ServiceRequest:subject"
	ServiceRequestIncludeRequester    = "ServiceRequest:requester"
	ServiceRequestReferenceFormat     = "%s/%s"
	ServiceRequestRequestCodeSplitter = " "
)

const (
	ServiceRequestStatusActive = "active"
	ServiceRequestIntentOrder  = "order"
)

const (
	ServiceRequestPriorityRoutine = "routine"
	ServiceRequestPriorityUrgent  = "urgent"
	ServiceRequestPriorityASAP    = "asap"
	ServiceRequestPriorityStat    = "stat"
)

const (
	ServiceRequestCategoryImagingCode    = "363679005"
	ServiceRequestCategoryImagingDisplay = "Imaging"

	ServiceRequestPerformerRadiologistCode    = "78729002"
	ServiceRequestPerformerRadiologistDisplay = "Diagnostic radiologist"
)

// CodeOption is a selectable coded value offered on the creation form.
type CodeOption struct {
	Code    string
	Display string
}

// ImagingRequestCodes lists the imaging procedures offered on the creation form.
var ImagingRequestCodes = []CodeOption{
	{Code: "399208008", Display: "Plain chest X-ray"},
	{Code: "169069000", Display: "CT of head"},
	{Code: "241541005", Display: "High resolution CT of chest"},
	{Code: "816077007", Display: "MRI of brain"},
	{Code: "45036003", Display: "Ultrasonography of abdomen"},
	{Code: "71651007", Display: "Mammography"},
	{Code: "77477000", Display: "CT of abdomen"},
	{Code: "241615005", Display: "MRI of lumbar spine"},
}

var ImagingReasonCodes = []CodeOption{
	{Code: "49727002", Display: "Cough"},
	{Code: "29857009", Display: "Chest pain"},
	{Code: "25064002", Display: "Headache"},
	{Code: "21522001", Display: "Abdominal pain"},
	{Code: "279039007", Display: "Low back pain"},
	{Code: "233604007", Display: "Pneumonia"},
	{Code: "125605004", Display: "Fracture of bone"},
}

var ServiceRequestPriorities = []string{
	ServiceRequestPriorityRoutine,
	ServiceRequestPriorityUrgent,
	ServiceRequestPriorityASAP,
	ServiceRequestPriorityStat,
}
