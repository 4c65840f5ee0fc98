package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	coremission "github.com/example/fleet/internal/core/mission"
	"github.com/example/fleet/internal/ports/primary"
)

var formValidate *validator.Validate

func init() {
	formValidate = validator.New(validator.WithRequiredStructEnabled())
	_ = formValidate.RegisterValidation("mission_status", func(fl validator.FieldLevel) bool {
		return coremission.IsKnownStatus(fl.Field().String())
	})
	_ = formValidate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// MissionForm is the raw input of the mission creation screen.
type MissionForm struct {
	Title       string `validate:"required,notblank"`
	Description string
	Vessel      string `validate:"required"`
	Due         string `validate:"required"`
	Status      string `validate:"omitempty,mission_status"`
}

// FormError is a creation-screen input problem. It is raised before the store is touched.
type FormError struct {
	Field  string
	Reason string
}

func (e *FormError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// MissionAdapter is a thin adapter over the mission store for the
// creation, list and detail screens.
type MissionAdapter struct {
	store    primary.MissionStore
	screen   ScreenContext
	overview *DashboardAdapter
	out      io.Writer
}

// NewMissionAdapter creates a new MissionAdapter with the given store.
// When overview is non-nil it is rendered after a successful create.
func NewMissionAdapter(store primary.MissionStore, screen ScreenContext, overview *DashboardAdapter, out io.Writer) *MissionAdapter {
	return &MissionAdapter{
		store:    store,
		screen:   screen,
		overview: overview,
		out:      out,
	}
}

// Create validates the form, adds the mission and returns to the overview.
func (a *MissionAdapter) Create(ctx context.Context, form MissionForm) (*coremission.Mission, error) {
	draft, err := a.parseForm(form)
	if err != nil {
		return nil, err
	}

	mission, err := a.store.AddMission(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("failed to create mission: %w", err)
	}

	fmt.Fprintf(a.out, "✓ Created mission %s: %s\n", mission.ID, mission.Title)
	if a.overview != nil {
		a.overview.Render(ctx)
	}
	return mission, nil
}

// List lists missions matching filter; compact selects the narrow layout.
func (a *MissionAdapter) List(ctx context.Context, filter coremission.MissionFilter, compact bool) {
	missions := coremission.Filter(a.store.GetMissions(ctx), filter)

	if len(missions) == 0 {
		fmt.Fprintln(a.out, "No missions found")
		return
	}

	now := a.screen.now()
	if compact {
		for _, m := range missions {
			writeMissionLine(a.out, m, now)
		}
		return
	}

	fmt.Fprintln(a.out)
	writeMissionTable(a.out, missions, now)
	fmt.Fprintln(a.out)
}

// Show displays details for a single mission from the current snapshot.
func (a *MissionAdapter) Show(ctx context.Context, missionID string) (*coremission.Mission, error) {
	mission, ok := coremission.FindByID(a.store.GetMissions(ctx), missionID)
	if !ok {
		return nil, fmt.Errorf("mission %s not found", missionID)
	}

	fmt.Fprintf(a.out, "\nMission: %s\n", colorizeID(mission.ID))
	fmt.Fprintf(a.out, "Title:   %s\n", mission.Title)
	fmt.Fprintf(a.out, "Status:  %s\n", colorizeStatus(mission.Status, 0))
	fmt.Fprintf(a.out, "Vessel:  %s\n", mission.Vessel)
	if !mission.DueAt.IsZero() {
		fmt.Fprintf(a.out, "Due:     %s\n", strings.TrimSpace(colorizeDue(mission, a.screen.now(), 0)))
	}
	if mission.Description != "" {
		fmt.Fprintf(a.out, "Description: %s\n", mission.Description)
	}
	fmt.Fprintf(a.out, "Created: %s\n", mission.CreatedAt.Format(time.RFC3339))
	fmt.Fprintln(a.out)

	return &mission, nil
}

// parseForm turns raw form input into a draft.
func (a *MissionAdapter) parseForm(form MissionForm) (coremission.Draft, error) {
	if err := formValidate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return coremission.Draft{}, formFieldError(verrs[0])
		}
		return coremission.Draft{}, err
	}

	if !a.screen.knownVessel(form.Vessel) {
		return coremission.Draft{}, &FormError{Field: "vessel", Reason: fmt.Sprintf("%q is not in the fleet", form.Vessel)}
	}

	due, err := ParseDue(form.Due)
	if err != nil {
		return coremission.Draft{}, &FormError{Field: "due", Reason: err.Error()}
	}
	if !a.screen.StartedAt.IsZero() && due.Before(a.screen.StartedAt) {
		return coremission.Draft{}, &FormError{Field: "due", Reason: "must not be in the past"}
	}

	status := form.Status
	if status == "" {
		status = coremission.InitialStatus()
	}

	return coremission.Draft{
		Title:       form.Title,
		Description: form.Description,
		Vessel:      form.Vessel,
		DueAt:       due,
		Status:      status,
	}, nil
}

// ParseDue accepts an RFC3339 timestamp or a bare date. A bare date means
// 23:59 UTC on that day.
func ParseDue(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if d, err := time.Parse(time.DateOnly, raw); err == nil {
		return d.Add(23*time.Hour + 59*time.Minute), nil
	}
	return time.Time{}, fmt.Errorf("%q is not a date (use 2006-01-02 or RFC3339)", raw)
}

func formFieldError(fe validator.FieldError) *FormError {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return &FormError{Field: field, Reason: "is required"}
	case "notblank":
		return &FormError{Field: field, Reason: "must not be blank"}
	case "mission_status":
		return &FormError{
			Field:  field,
			Reason: fmt.Sprintf("%q is not one of %s", fe.Value(), strings.Join(coremission.KnownStatuses(), ", ")),
		}
	default:
		return &FormError{Field: field, Reason: fmt.Sprintf("failed %s", fe.Tag())}
	}
}
