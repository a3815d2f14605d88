package models

import (
	"encoding/json"
	"fmt"
)

// ChecklistStep is one of the ten onboarding funnel steps.
type ChecklistStep int

// Steps in display order.
const (
	StepInitialMeeting ChecklistStep = iota
	StepStorytelling
	StepIrresistibleOffer
	StepOfferValidated
	StepAdsScripted
	StepSagaCreatives
	StepTrafficCourse
	StepInitialCampaign
	StepEssentialLessons
	StepClosingPackages
)

// ChecklistSize is the number of fixed funnel steps.
const ChecklistSize = 10

var checklistKeys = [ChecklistSize]string{
	"initialMeeting",
	"storytelling",
	"irresistibleOffer",
	"offerValidated",
	"adsScripted",
	"sagaCreatives",
	"trafficCourse",
	"initialCampaign",
	"essentialLessons",
	"closingPackages",
}

var checklistLabels = [ChecklistSize]string{
	"Teve Reunião Inicial?",
	"Fez o Storytelling?",
	"Fez a Proposta Irresistível?",
	"Validou a Proposta?",
	"Roteirizou Anúncios?",
	"Fez Criativos método SAGA?",
	"Assistiu o Curso de Tráfego?",
	"Subiu a Campanha Inicial?",
	"Assistiu Aulas Essenciais?",
	"Está fechando os 3 tipos de Pacotes?",
}

// Valid reports whether the step is one of the ten known steps.
func (s ChecklistStep) Valid() bool {
	return s >= 0 && s < ChecklistSize
}

// Key returns the stable wire name of the step.
func (s ChecklistStep) Key() string {
	if !s.Valid() {
		return ""
	}
	return checklistKeys[s]
}

// Label returns the question shown to staff for the step.
func (s ChecklistStep) Label() string {
	if !s.Valid() {
		return ""
	}
	return checklistLabels[s]
}

// ParseChecklistStep resolves a wire name to its step.
func ParseChecklistStep(key string) (ChecklistStep, error) {
	for i, k := range checklistKeys {
		if k == key {
			return ChecklistStep(i), nil
		}
	}
	return 0, fmt.Errorf("unknown checklist step %q", key)
}

// ChecklistSteps returns all steps in display order.
func ChecklistSteps() []ChecklistStep {
	steps := make([]ChecklistStep, ChecklistSize)
	for i := range steps {
		steps[i] = ChecklistStep(i)
	}
	return steps
}

// Checklist holds the done flag of every funnel step, indexed by ChecklistStep.
type Checklist [ChecklistSize]bool

// Done reports whether the step is checked.
func (c Checklist) Done(step ChecklistStep) bool {
	if !step.Valid() {
		return false
	}
	return c[step]
}

// Toggle flips one step. Invalid steps are ignored.
func (c *Checklist) Toggle(step ChecklistStep) {
	if !step.Valid() {
		return
	}
	c[step] = !c[step]
}

// Count returns how many steps are checked.
func (c Checklist) Count() int {
	n := 0
	for _, done := range c {
		if done {
			n++
		}
	}
	return n
}

// All reports whether every step is checked.
func (c Checklist) All() bool {
	return c.Count() == ChecklistSize
}

// MarshalJSON encodes the checklist as an object keyed by step name.
func (c Checklist) MarshalJSON() ([]byte, error) {
	out := make(map[string]bool, ChecklistSize)
	for i, done := range c {
		out[checklistKeys[i]] = done
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the object form. Missing steps stay false; unknown keys are rejected.
func (c *Checklist) UnmarshalJSON(data []byte) error {
	var in map[string]bool
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	var out Checklist
	for key, done := range in {
		step, err := ParseChecklistStep(key)
		if err != nil {
			return err
		}
		out[step] = done
	}
	*c = out
	return nil
}
