package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"freight_admin/internal/activity"
	"freight_admin/internal/clients"
	"freight_admin/internal/gate"
	"freight_admin/internal/middleware"
	"freight_admin/internal/models"
	"freight_admin/internal/session"
	"freight_admin/internal/wizard"
)

// finishTimeout bounds the bookkeeping after the Load service answered.
const finishTimeout = 5 * time.Second

// Drafts persists wizard sessions between requests.
type Drafts interface {
	Load(ctx context.Context, sessionID string) (*wizard.Session, error)
	Save(ctx context.Context, sessionID string, s *wizard.Session) error
	Discard(ctx context.Context, sessionID string) error
}

// WizardController serves the create-load wizard.
type WizardController struct {
	Drafts   Drafts
	Loads    wizard.Submitter
	Sessions session.Store
	Activity activity.Log
}

type stopView struct {
	models.Stop
	Index       int    `json:"index"`
	StopOrder   int    `json:"stopOrder"`
	Label       string `json:"label"`
	TypeName    string `json:"typeName"`
	CanMoveUp   bool   `json:"canMoveUp"`
	CanMoveDown bool   `json:"canMoveDown"`
}

func wizardView(s *wizard.Session) gin.H {
	stops := make([]stopView, 0, len(s.Stops))
	for i, st := range s.Stops {
		stops = append(stops, stopView{
			Stop:        st,
			Index:       i,
			StopOrder:   i + 1,
			Label:       "Stop " + strconv.Itoa(i+1),
			TypeName:    st.Type().String(),
			CanMoveUp:   i > 0,
			CanMoveDown: i < len(s.Stops)-1,
		})
	}
	return gin.H{
		"steps":        wizard.Steps,
		"currentStep":  s.CurrentStep,
		"fields":       s.Fields,
		"stops":        stops,
		"isSubmitting": s.Submitting,
		"submitted":    s.Submitted,
		"canGoBack":    s.CurrentStep > wizard.StepInformation,
		"canSubmit":    s.Terminal() && !s.Submitting && !s.Submitted,
	}
}

// mutate loads the draft, applies fn and saves the result. Validation
// failures leave the stored draft untouched.
func (w *WizardController) mutate(c *gin.Context, fn func(s *wizard.Session) error) {
	sid := middleware.SessionID(c)
	ctx := c.Request.Context()

	s, err := w.Drafts.Load(ctx, sid)
	if err != nil {
		logrus.WithError(err).Error("wizard: could not load draft")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load wizard"})
		return
	}
	// The submit handler owns the draft until the Load service answers.
	if s.Submitting {
		wizardError(c, wizard.ErrSubmitInFlight, s)
		return
	}
	if err := fn(s); err != nil {
		wizardError(c, err, s)
		return
	}
	if err := w.Drafts.Save(ctx, sid, s); err != nil {
		logrus.WithError(err).Error("wizard: could not save draft")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save wizard"})
		return
	}
	c.JSON(http.StatusOK, wizardView(s))
}

func wizardError(c *gin.Context, err error, s *wizard.Session) {
	var verr *wizard.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "fields": verr.Fields, "wizard": wizardView(s)})
	case errors.Is(err, wizard.ErrStopIndex):
		c.JSON(http.StatusNotFound, gin.H{"error": "Stop not found"})
	case errors.Is(err, wizard.ErrSubmitInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "Load is already being submitted"})
	case errors.Is(err, wizard.ErrTerminalStep),
		errors.Is(err, wizard.ErrNotTerminalStep),
		errors.Is(err, wizard.ErrAlreadyDone):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "wizard": wizardView(s)})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

func stopIndex(c *gin.Context) (int, bool) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stop index"})
		return 0, false
	}
	return i, true
}

// State returns the current wizard.
func (w *WizardController) State(c *gin.Context) {
	s, err := w.Drafts.Load(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		logrus.WithError(err).Error("wizard: could not load draft")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load wizard"})
		return
	}
	c.JSON(http.StatusOK, wizardView(s))
}

// UpdateFields stores the Information step inputs without validating them.
func (w *WizardController) UpdateFields(c *gin.Context) {
	var fields wizard.LoadFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid load fields: " + err.Error()})
		return
	}
	w.mutate(c, func(s *wizard.Session) error {
		s.SetFields(fields)
		return nil
	})
}

// Next validates the current step and advances.
func (w *WizardController) Next(c *gin.Context) {
	w.mutate(c, func(s *wizard.Session) error { return s.Advance() })
}

// Previous goes one step back.
func (w *WizardController) Previous(c *gin.Context) {
	w.mutate(c, func(s *wizard.Session) error {
		s.Retreat()
		return nil
	})
}

// AddStop appends a stop.
func (w *WizardController) AddStop(c *gin.Context) {
	var stop models.Stop
	if err := c.ShouldBindJSON(&stop); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stop: " + err.Error()})
		return
	}
	w.mutate(c, func(s *wizard.Session) error { return s.AddStop(stop) })
}

// UpdateStop replaces the stop at :index.
func (w *WizardController) UpdateStop(c *gin.Context) {
	i, ok := stopIndex(c)
	if !ok {
		return
	}
	var stop models.Stop
	if err := c.ShouldBindJSON(&stop); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stop: " + err.Error()})
		return
	}
	w.mutate(c, func(s *wizard.Session) error { return s.UpdateStop(i, stop) })
}

// RemoveStop deletes the stop at :index.
func (w *WizardController) RemoveStop(c *gin.Context) {
	i, ok := stopIndex(c)
	if !ok {
		return
	}
	w.mutate(c, func(s *wizard.Session) error { return s.RemoveStop(i) })
}

// MoveStop moves the stop at :index one place :direction (up or down).
func (w *WizardController) MoveStop(c *gin.Context) {
	i, ok := stopIndex(c)
	if !ok {
		return
	}
	dir, err := wizard.ParseDirection(c.Param("direction"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	w.mutate(c, func(s *wizard.Session) error { return s.MoveStop(i, dir) })
}

// Cancel discards the draft.
func (w *WizardController) Cancel(c *gin.Context) {
	if err := w.Drafts.Discard(c.Request.Context(), middleware.SessionID(c)); err != nil {
		logrus.WithError(err).Warn("wizard: could not discard draft")
	}
	c.JSON(http.StatusOK, gin.H{"redirect": gate.DefaultPath})
}

// Submit sends the assembled load to the Load service.
func (w *WizardController) Submit(c *gin.Context) {
	sid := middleware.SessionID(c)
	cred := middleware.Credential(c)
	ctx := c.Request.Context()

	s, err := w.Drafts.Load(ctx, sid)
	if err != nil {
		logrus.WithError(err).Error("wizard: could not load draft")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load wizard"})
		return
	}

	payload, err := s.BeginSubmit(cred.Profile.UserID)
	if err != nil {
		wizardError(c, err, s)
		return
	}
	if err := w.Drafts.Save(ctx, sid, s); err != nil {
		logrus.WithError(err).Error("wizard: could not save draft")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save wizard"})
		return
	}

	res, callErr := w.Loads.CreateLoad(ctx, cred.AccessToken, payload)
	err = s.FinishSubmit(res, callErr)

	// The outcome must be stored even when the caller has gone away,
	// otherwise the draft stays marked as submitting.
	done, cancel := context.WithTimeout(context.WithoutCancel(ctx), finishTimeout)
	defer cancel()
	c.Request = c.Request.WithContext(done)

	if err == nil {
		if derr := w.Drafts.Discard(done, sid); derr != nil {
			logrus.WithError(derr).Warn("wizard: could not discard submitted draft")
		}
		record(done, w.Activity, cred.Profile.UserID, models.ActivityLoadCreated, payload.Title,
			strconv.Itoa(len(payload.LoadStops))+" stops")
		c.JSON(http.StatusCreated, gin.H{"message": "Load created successfully!", "redirect": gate.DefaultPath})
		return
	}

	if errors.Is(callErr, clients.ErrUnauthorized) {
		upstreamFailed(c, callErr, w.Sessions, w.Drafts, "")
		return
	}
	if serr := w.Drafts.Save(done, sid, s); serr != nil {
		logrus.WithError(serr).Error("wizard: could not save draft after failed submit")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save wizard"})
		return
	}

	var subErr *wizard.SubmissionError
	if errors.As(err, &subErr) {
		if subErr.Err != nil {
			logrus.WithError(subErr.Err).WithField("user_id", cred.Profile.UserID).Error("Create load error")
			c.JSON(http.StatusBadGateway, gin.H{"error": subErr.Message, "wizard": wizardView(s)})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": subErr.Message, "wizard": wizardView(s)})
		return
	}
	wizardError(c, err, s)
}
