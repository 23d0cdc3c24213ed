package model

// Event is one analytics event as appended to the store.
type Event struct {
	ID        string         `json:"id"`
	TS        string         `json:"ts"`
	SessionID string         `json:"sessionId"`
	Name      string         `json:"name"`
	Props     map[string]any `json:"props"`
}

// Lead is a user-submitted contact request tied to an institution/program.
type Lead struct {
	ID           string `json:"id"`
	TS           string `json:"ts"`
	SessionID    string `json:"sessionId"`
	UniversityID string `json:"universityId"`
	ProgramID    string `json:"programId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Message      string `json:"message"`
	Consent      bool   `json:"consent"`
}

// Agreement is a CRM pipeline record for an institution.
type Agreement struct {
	ID                 string `json:"id"`
	TS                 string `json:"ts"`
	UniversityID       string `json:"universityId"`
	Stage              string `json:"stage"`
	ExpectedMonthlyCOP int64  `json:"expectedMonthlyCOP"`
	Notes              string `json:"notes"`
}

// CreateEventRequest is the payload for recording an analytics event.
type CreateEventRequest struct {
	SessionID string         `json:"sessionId" binding:"required"`
	Name      string         `json:"name" binding:"required"`
	Props     map[string]any `json:"props"`
}

// CreateLeadRequest is the payload for submitting a lead. Consent must be
// explicitly true; binding treats false the same as missing.
type CreateLeadRequest struct {
	SessionID    string `json:"sessionId"`
	UniversityID string `json:"universityId" binding:"required"`
	ProgramID    string `json:"programId"`
	Name         string `json:"name"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	Message      string `json:"message"`
	Consent      bool   `json:"consent" binding:"required"`
}

// CreateAgreementRequest is the payload for creating a pipeline record.
type CreateAgreementRequest struct {
	UniversityID       string `json:"universityId" binding:"required"`
	Stage              string `json:"stage"`
	ExpectedMonthlyCOP int64  `json:"expectedMonthlyCOP"`
	Notes              string `json:"notes"`
}
