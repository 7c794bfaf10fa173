package models

import "strings"

// IntakeForm accumulates answers for the guided entity-creation flow.
// The client owns it and echoes the full form back on every turn.
type IntakeForm struct {
	Jurisdiction        string `json:"jurisdiction,omitempty"`
	QualificationStates string `json:"qualificationStates,omitempty"`
	Owner               string `json:"owner,omitempty"`
	Purpose             string `json:"purpose,omitempty"`
}

// IntakeStage is the position in the intake flow, derived from which fields are filled.
type IntakeStage string

const (
	StageIdle                  IntakeStage = "idle"
	StageAwaitingJurisdiction  IntakeStage = "awaiting_jurisdiction"
	StageAwaitingQualification IntakeStage = "awaiting_qualification"
	StageAwaitingOwner         IntakeStage = "awaiting_owner"
	StageAwaitingPurpose       IntakeStage = "awaiting_purpose"
	StageComplete              IntakeStage = "complete"
)

// IntakeField is one question of the intake flow.
type IntakeField struct {
	Label string
	Stage IntakeStage
	Value string
}

// Fields lists the form fields in the order they are asked for.
func (f *IntakeForm) Fields() []IntakeField {
	return []IntakeField{
		{Label: "Home jurisdiction (state of formation)", Stage: StageAwaitingJurisdiction, Value: f.Jurisdiction},
		{Label: "States to qualify in", Stage: StageAwaitingQualification, Value: f.QualificationStates},
		{Label: "Internal owner", Stage: StageAwaitingOwner, Value: f.Owner},
		{Label: "Business purpose", Stage: StageAwaitingPurpose, Value: f.Purpose},
	}
}

// Stage returns the first unanswered question, or StageComplete once every field is
// non-empty. A nil form is StageIdle. Fields filled out of order do not move the flow
// backwards; the first blank field in ask order always wins.
func (f *IntakeForm) Stage() IntakeStage {
	if f == nil {
		return StageIdle
	}
	for _, field := range f.Fields() {
		if strings.TrimSpace(field.Value) == "" {
			return field.Stage
		}
	}
	return StageComplete
}
