package jobnest

import (
	"encoding/json"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
)

// Role tags a user as a job seeker or a job provider. The tag is fixed at
// account creation.
type Role string

const (
	// RoleSeeker is a job applicant.
	RoleSeeker Role = "seeker"
	// RoleProvider is a job poster.
	RoleProvider Role = "provider"
)

// SeekerFields is the seeker-only extension of a profile.
type SeekerFields struct {
	Skills      []string `json:"skills,omitempty"`
	Experience  string   `json:"experience,omitempty"`
	Education   string   `json:"education,omitempty"`
	ResumeURL   string   `json:"resumeURL,omitempty"`
	Location    string   `json:"location,omitempty"`
	Bio         string   `json:"bio,omitempty"`
	SavedJobs   []string `json:"savedJobs,omitempty"`
	AppliedJobs []string `json:"appliedJobs,omitempty"`
}

// ProviderFields is the provider-only extension of a profile.
type ProviderFields struct {
	CompanyName string   `json:"companyName,omitempty"`
	Industry    string   `json:"industry,omitempty"`
	CompanySize string   `json:"companySize,omitempty"`
	Location    string   `json:"location,omitempty"`
	Website     string   `json:"website,omitempty"`
	Description string   `json:"description,omitempty"`
	PostedJobs  []string `json:"postedJobs,omitempty"`
}

// Profile is the application-specific user record layered on top of the
// provider's bare identity. Exactly one of Seeker or Provider is set, and it
// must agree with Role; Validate enforces the invariant.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"userType"`
	PhotoURL  string    `json:"photoURL,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`

	Seeker   *SeekerFields   `json:"seeker,omitempty"`
	Provider *ProviderFields `json:"provider,omitempty"`
}

// Validate checks required fields and the role/fields agreement invariant.
func (p *Profile) Validate() error {
	if err := validation.ValidateStruct(p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Email, validation.Required, is.Email),
	); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid profile").
			WithCode(goerrors.CodeBadRequest)
	}

	switch p.Role {
	case RoleSeeker:
		if p.Seeker == nil || p.Provider != nil {
			return ErrRoleFieldsMismatch.WithMetadata(map[string]any{"role": p.Role})
		}
	case RoleProvider:
		if p.Provider == nil || p.Seeker != nil {
			return ErrRoleFieldsMismatch.WithMetadata(map[string]any{"role": p.Role})
		}
	default:
		return ErrUnknownRole.WithMetadata(map[string]any{"role": p.Role})
	}

	return nil
}

// Clone returns a deep copy so published values cannot be mutated behind the
// manager's back. Clone of nil is nil.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}

	out := *p
	if p.Seeker != nil {
		seeker := *p.Seeker
		seeker.Skills = append([]string(nil), p.Seeker.Skills...)
		seeker.SavedJobs = append([]string(nil), p.Seeker.SavedJobs...)
		seeker.AppliedJobs = append([]string(nil), p.Seeker.AppliedJobs...)
		out.Seeker = &seeker
	}
	if p.Provider != nil {
		provider := *p.Provider
		provider.PostedJobs = append([]string(nil), p.Provider.PostedJobs...)
		out.Provider = &provider
	}
	return &out
}

// storedProfile is the wire shape of the persisted session blob. The creation
// timestamp travels as an RFC3339 string and is re-hydrated on read.
type storedProfile struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      string          `json:"userType"`
	PhotoURL  string          `json:"photoURL,omitempty"`
	CreatedAt string          `json:"createdAt,omitempty"`
	Seeker    *SeekerFields   `json:"seeker,omitempty"`
	Provider  *ProviderFields `json:"provider,omitempty"`
}

// EncodeProfile serializes a profile for the session storage slot.
func EncodeProfile(p *Profile) (string, error) {
	if p == nil {
		return "", goerrors.New("cannot encode nil profile", goerrors.CategoryInternal)
	}

	stored := storedProfile{
		ID:       p.ID,
		Name:     p.Name,
		Email:    p.Email,
		Role:     string(p.Role),
		PhotoURL: p.PhotoURL,
		Seeker:   p.Seeker,
		Provider: p.Provider,
	}
	if !p.CreatedAt.IsZero() {
		stored.CreatedAt = p.CreatedAt.Format(time.RFC3339)
	}

	raw, err := json.Marshal(stored)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to encode session profile")
	}
	return string(raw), nil
}

// DecodeProfile rehydrates a persisted blob into a typed profile. A missing
// or unparseable creation timestamp defaults to now.
func DecodeProfile(raw string, now time.Time) (*Profile, error) {
	var stored storedProfile
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to decode session profile")
	}

	role, ok := ParseRole(stored.Role)
	if !ok {
		return nil, ErrUnknownRole.WithMetadata(map[string]any{"role": stored.Role})
	}

	createdAt := now
	if stored.CreatedAt != "" {
		if ts, err := time.Parse(time.RFC3339, stored.CreatedAt); err == nil {
			createdAt = ts
		}
	}

	p := &Profile{
		ID:        stored.ID,
		Name:      stored.Name,
		Email:     stored.Email,
		Role:      role,
		PhotoURL:  stored.PhotoURL,
		CreatedAt: createdAt,
		Seeker:    stored.Seeker,
		Provider:  stored.Provider,
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
