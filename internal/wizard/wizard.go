// Package wizard drives the three-step load creation flow: load information,
// stops, review. A Session accumulates form fields and stops across steps and
// only produces a payload for the Load service at the review step.
package wizard

import (
	"context"
	"fmt"

	"freight_admin/internal/models"
)

// Step is a 0-based wizard position.
type Step int

const (
	StepInformation Step = iota
	StepStops
	StepReview
)

// StepCount is the number of steps; StepReview is terminal.
const StepCount = 3

// StepInfo is the header shown above the wizard.
type StepInfo struct {
	Step        Step   `json:"step"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Steps lists the wizard steps in order.
var Steps = [StepCount]StepInfo{
	{StepInformation, "Load Information", "Basic load details"},
	{StepStops, "Stops", "Pickup & delivery locations"},
	{StepReview, "Review", "Confirm details"},
}

// Direction moves a stop towards the start or the end of the list.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection accepts "up" or "down".
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Up, Down:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("wizard: unknown direction %q", s)
	}
}

// LoadFields are the Information step inputs. They are kept across steps.
type LoadFields struct {
	Title             string   `json:"title" validate:"required,max=200"`
	Description       string   `json:"description,omitempty" validate:"max=1000"`
	Weight            *float64 `json:"weight,omitempty" validate:"omitempty,gte=0,lte=999999"`
	Volume            *float64 `json:"volume,omitempty" validate:"omitempty,gte=0,lte=999999"`
	ContactPersonName string   `json:"contactPersonName,omitempty" validate:"max=100"`
	ContactPhone      string   `json:"contactPhone,omitempty" validate:"max=20,phonechars"`
	ContactEmail      string   `json:"contactEmail,omitempty" validate:"omitempty,email,max=100"`
}

// Submitter creates loads on the Load service.
type Submitter interface {
	CreateLoad(ctx context.Context, token string, payload models.LoadPayload) (*models.SubmitResult, error)
}

// Session is the state of one in-progress load creation.
type Session struct {
	CurrentStep Step          `json:"currentStep"`
	Fields      LoadFields    `json:"fields"`
	Stops       []models.Stop `json:"stops"`
	Submitting  bool          `json:"isSubmitting"`
	Submitted   bool          `json:"submitted"`
}

// NewSession starts a wizard at the Information step.
func NewSession() *Session {
	return &Session{Stops: []models.Stop{}}
}

// Terminal reports whether the session is at the review step.
func (s *Session) Terminal() bool {
	return s.CurrentStep == StepReview
}

// Advance validates the current step and moves forward.
func (s *Session) Advance() error {
	if s.Submitted {
		return ErrAlreadyDone
	}
	switch s.CurrentStep {
	case StepInformation:
		if err := ValidateFields(s.Fields); err != nil {
			return err
		}
	case StepStops:
		if err := ValidateStops(s.Stops); err != nil {
			return err
		}
	default:
		return ErrTerminalStep
	}
	s.CurrentStep++
	return nil
}

// Retreat moves one step back. It never fails and stops at the first step.
func (s *Session) Retreat() {
	if s.CurrentStep > StepInformation {
		s.CurrentStep--
	}
}

// SetFields replaces the Information step inputs without validating them.
func (s *Session) SetFields(f LoadFields) {
	s.Fields = f
}

// AddStop appends a stop after checking the stop form rules.
func (s *Session) AddStop(stop models.Stop) error {
	if err := ValidateStop(stop); err != nil {
		return err
	}
	s.Stops = append(s.Stops, stop)
	return nil
}

// UpdateStop replaces the stop at index.
func (s *Session) UpdateStop(index int, stop models.Stop) error {
	if index < 0 || index >= len(s.Stops) {
		return ErrStopIndex
	}
	if err := ValidateStop(stop); err != nil {
		return err
	}
	s.Stops[index] = stop
	return nil
}

// RemoveStop deletes the stop at index, keeping the order of the rest.
func (s *Session) RemoveStop(index int) error {
	if index < 0 || index >= len(s.Stops) {
		return ErrStopIndex
	}
	s.Stops = append(s.Stops[:index], s.Stops[index+1:]...)
	return nil
}

// MoveStop swaps the stop at index with its neighbour. Moving the first stop
// up or the last stop down does nothing.
func (s *Session) MoveStop(index int, dir Direction) error {
	if index < 0 || index >= len(s.Stops) {
		return ErrStopIndex
	}
	var other int
	switch dir {
	case Up:
		other = index - 1
	case Down:
		other = index + 1
	default:
		return fmt.Errorf("wizard: unknown direction %q", dir)
	}
	if other < 0 || other >= len(s.Stops) {
		return nil
	}
	s.Stops[index], s.Stops[other] = s.Stops[other], s.Stops[index]
	return nil
}

// Payload assembles the Load service request. Stop order is the 1-based
// position in the list.
func (s *Session) Payload(userID string) (models.LoadPayload, error) {
	if err := ValidateStops(s.Stops); err != nil {
		return models.LoadPayload{}, err
	}
	p := models.LoadPayload{
		UserID:            userID,
		Title:             s.Fields.Title,
		Description:       s.Fields.Description,
		Weight:            s.Fields.Weight,
		Volume:            s.Fields.Volume,
		ContactPersonName: s.Fields.ContactPersonName,
		ContactPhone:      s.Fields.ContactPhone,
		ContactEmail:      s.Fields.ContactEmail,
		LoadStops:         make([]models.LoadStop, 0, len(s.Stops)),
	}
	for i, stop := range s.Stops {
		country := stop.Country
		if country == "" {
			country = models.DefaultCountry
		}
		p.LoadStops = append(p.LoadStops, models.LoadStop{
			StopType:          stop.Type(),
			StopOrder:         i + 1,
			ContactPersonName: stop.ContactPersonName,
			ContactPhone:      stop.ContactPhone,
			Address:           stop.Address,
			City:              stop.City,
			District:          stop.District,
			Country:           country,
		})
	}
	return p, nil
}

// BeginSubmit checks the session may be submitted, builds the payload and
// marks the session as submitting. Callers persist the session before
// contacting the Load service so a second submit is refused.
func (s *Session) BeginSubmit(userID string) (models.LoadPayload, error) {
	switch {
	case s.Submitted:
		return models.LoadPayload{}, ErrAlreadyDone
	case !s.Terminal():
		return models.LoadPayload{}, ErrNotTerminalStep
	case s.Submitting:
		return models.LoadPayload{}, ErrSubmitInFlight
	}
	p, err := s.Payload(userID)
	if err != nil {
		return models.LoadPayload{}, err
	}
	s.Submitting = true
	return p, nil
}

// FinishSubmit records the Load service answer. On failure the session stays
// at the review step and can be submitted again.
func (s *Session) FinishSubmit(res *models.SubmitResult, callErr error) error {
	s.Submitting = false
	if callErr != nil {
		return &SubmissionError{Message: MsgSubmitError, Err: callErr}
	}
	if res == nil || !res.IsSuccess {
		msg := MsgSubmitFailed
		if res != nil && res.Message != "" {
			msg = res.Message
		}
		return &SubmissionError{Message: msg}
	}
	s.Submitted = true
	return nil
}

// Submit runs BeginSubmit, the service call and FinishSubmit in one go.
func (s *Session) Submit(ctx context.Context, svc Submitter, cred models.Credential) error {
	payload, err := s.BeginSubmit(cred.Profile.UserID)
	if err != nil {
		return err
	}
	res, callErr := svc.CreateLoad(ctx, cred.AccessToken, payload)
	return s.FinishSubmit(res, callErr)
}
