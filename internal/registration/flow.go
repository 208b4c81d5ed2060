package registration

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"ngo-portal/internal/domain/memberships"
	"ngo-portal/internal/payments"
)

// Step is the authoritative position of a registration flow. All movement
// goes through transition; handlers never flip the step directly.
type Step string

const (
	StepAudience Step = "audience-selection"
	StepForm     Step = "form"
	StepPayment  Step = "payment"
	StepSuccess  Step = "success"
)

var allowed = map[Step][]Step{
	StepAudience: {StepForm},
	StepForm:     {StepPayment, StepAudience},
	StepPayment:  {StepSuccess, StepForm},
	StepSuccess:  {},
}

// Intent is the client-side draft. It lives only inside the flow until a
// verified payment turns it into a Membership row.
type Intent struct {
	Audience      memberships.AudienceType `json:"audienceType"`
	Name          string                   `json:"name"`
	Email         string                   `json:"email"`
	Phone         string                   `json:"phone"`
	Details       map[string]string        `json:"details"`
	AgreedToTerms bool                     `json:"agreedToTerms"`
}

// StepError is the recoverable error surfaced at the payment step.
type StepError struct {
	Kind    payments.Kind `json:"kind"`
	Message string        `json:"message"`
}

// Flow is one user's multi-step registration. A flow is driven by a single
// client strictly sequentially; it is not guarded for concurrent mutation.
type Flow struct {
	ID     string
	step   Step
	intent Intent
	config memberships.AudienceConfig

	// Provider order id of the attempt in flight, if any.
	orderID     string
	referenceID string
	lastErr     *StepError

	CreatedAt time.Time
	UpdatedAt time.Time
}

func New() *Flow {
	now := time.Now()
	return &Flow{
		ID:        uuid.NewString(),
		step:      StepAudience,
		intent:    Intent{Details: map[string]string{}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (f *Flow) Step() Step                         { return f.step }
func (f *Flow) Intent() Intent                     { return f.intent }
func (f *Flow) Config() memberships.AudienceConfig { return f.config }
func (f *Flow) ReferenceID() string                { return f.referenceID }
func (f *Flow) OrderID() string                    { return f.orderID }
func (f *Flow) Err() *StepError                    { return f.lastErr }

func (f *Flow) transition(to Step) error {
	for _, t := range allowed[f.step] {
		if t == to {
			f.step = to
			f.UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("invalid transition %s -> %s", f.step, to)
}

// SelectAudience moves audience-selection -> form and carries the audience
// configuration (title, fee, field set) forward.
func (f *Flow) SelectAudience(t memberships.AudienceType) error {
	cfg, ok := memberships.Config(t)
	if !ok {
		return fmt.Errorf("unknown audience type %q", t)
	}
	if err := f.transition(StepForm); err != nil {
		return err
	}
	f.intent.Audience = t
	f.config = cfg
	return nil
}

// UpdateForm merges a partial edit into the draft, the way the form mutates
// field by field as the user types. Empty strings in the patch are ignored
// so partial updates never erase earlier input.
type FormPatch struct {
	Name          *string           `json:"name"`
	Email         *string           `json:"email"`
	Phone         *string           `json:"phone"`
	Details       map[string]string `json:"details"`
	AgreedToTerms *bool             `json:"agreedToTerms"`
}

func (f *Flow) UpdateForm(p FormPatch) error {
	if f.step != StepForm {
		return fmt.Errorf("cannot edit form in step %s", f.step)
	}
	if p.Name != nil {
		f.intent.Name = *p.Name
	}
	if p.Email != nil {
		f.intent.Email = *p.Email
	}
	if p.Phone != nil {
		f.intent.Phone = *p.Phone
	}
	if p.AgreedToTerms != nil {
		f.intent.AgreedToTerms = *p.AgreedToTerms
	}
	for k, v := range p.Details {
		f.intent.Details[k] = v
	}
	f.UpdatedAt = time.Now()
	return nil
}

// MissingFields lists what blocks form -> payment. Audience-specific fields
// are deliberately absent: they are collected but not required.
func (f *Flow) MissingFields() []string {
	var missing []string
	if f.intent.Name == "" {
		missing = append(missing, "name")
	}
	if f.intent.Email == "" {
		missing = append(missing, "email")
	}
	if f.intent.Phone == "" {
		missing = append(missing, "phone")
	}
	if !f.intent.AgreedToTerms {
		missing = append(missing, "agreedToTerms")
	}
	return missing
}

// SubmitForm is the guarded form -> payment transition.
func (f *Flow) SubmitForm() error {
	if f.step != StepForm {
		return fmt.Errorf("cannot submit form in step %s", f.step)
	}
	if missing := f.MissingFields(); len(missing) > 0 {
		return fmt.Errorf("form incomplete: missing %v", missing)
	}
	return f.transition(StepPayment)
}

// Back moves payment -> form (draft preserved) or form -> audience-selection
// (draft reset). Success has no back transition.
func (f *Flow) Back() error {
	switch f.step {
	case StepPayment:
		f.lastErr = nil
		f.orderID = ""
		return f.transition(StepForm)
	case StepForm:
		if err := f.transition(StepAudience); err != nil {
			return err
		}
		f.intent = Intent{Details: map[string]string{}}
		f.config = memberships.AudienceConfig{}
		return nil
	default:
		return fmt.Errorf("cannot go back from step %s", f.step)
	}
}

// BeginAttempt records the provider order for the attempt in flight.
// Every retry gets a fresh order; nothing from a previous attempt is reused.
func (f *Flow) BeginAttempt(orderID string) error {
	if f.step != StepPayment {
		return fmt.Errorf("cannot start payment in step %s", f.step)
	}
	f.orderID = orderID
	f.lastErr = nil
	f.UpdatedAt = time.Now()
	return nil
}

// Fail keeps the flow at the payment step with a recoverable error.
// No draft state is lost; the user may retry.
func (f *Flow) Fail(kind payments.Kind, message string) {
	f.lastErr = &StepError{Kind: kind, Message: message}
	f.orderID = ""
	f.UpdatedAt = time.Now()
}

// Cancel clears the attempt in flight. Dismissing the checkout is a normal
// outcome, not an error; the provider-side order simply goes unused.
func (f *Flow) Cancel() {
	f.orderID = ""
	f.lastErr = nil
	f.UpdatedAt = time.Now()
}

// Complete is the payment -> success transition, valid only after a
// verified payment produced a reference id.
func (f *Flow) Complete(referenceID string) error {
	if referenceID == "" {
		return fmt.Errorf("cannot complete without a reference id")
	}
	if err := f.transition(StepSuccess); err != nil {
		return err
	}
	f.referenceID = referenceID
	f.lastErr = nil
	f.orderID = ""
	return nil
}
