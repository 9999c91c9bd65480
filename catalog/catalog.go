// Package catalog holds the static job posting collection the client browses
// and the pure filter applied to it. Postings are immutable at runtime; the
// collection is fixture data, not a storage layer.
package catalog

import "time"

// Type is the employment type of a posting.
type Type string

const (
	TypeFullTime   Type = "full-time"
	TypePartTime   Type = "part-time"
	TypeContract   Type = "contract"
	TypeInternship Type = "internship"
)

// ParseType converts a raw string to a Type. Empty input is valid and means
// "no constraint" to the filter.
func ParseType(s string) (Type, bool) {
	t := Type(s)
	switch t {
	case "", TypeFullTime, TypePartTime, TypeContract, TypeInternship:
		return t, true
	}
	return "", false
}

// Status is a posting's lifecycle status.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Job is a posting in the catalog.
type Job struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	ProviderID       string     `json:"providerId"`
	Company          string     `json:"company"`
	Location         string     `json:"location"`
	Type             Type       `json:"jobType"`
	Salary           string     `json:"salary,omitempty"`
	Description      string     `json:"description"`
	Requirements     []string   `json:"requirements,omitempty"`
	Responsibilities []string   `json:"responsibilities,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	ExpiresAt        *time.Time `json:"expiresAt,omitempty"`
	Applicants       []string   `json:"applicants"`
	Status           Status     `json:"status"`
	ImageURL         string     `json:"imageUrl,omitempty"`
}

// AddApplicant records a seeker on the posting at most once. It reports
// whether the applicant was added.
func (j *Job) AddApplicant(seekerID string) bool {
	for _, id := range j.Applicants {
		if id == seekerID {
			return false
		}
	}
	j.Applicants = append(j.Applicants, seekerID)
	return true
}

// ApplicationStatus tracks a submitted application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationReviewed ApplicationStatus = "reviewed"
	ApplicationRejected ApplicationStatus = "rejected"
	ApplicationAccepted ApplicationStatus = "accepted"
)

// Application records a seeker applying to a posting.
type Application struct {
	ID          string            `json:"id"`
	JobID       string            `json:"jobId"`
	SeekerID    string            `json:"seekerId"`
	ProviderID  string            `json:"providerId"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	ResumeURL   string            `json:"resumeURL,omitempty"`
	CoverLetter string            `json:"coverLetter,omitempty"`
}

// Catalog is an in-memory posting collection. Lookups return copies; the
// backing slice is never exposed.
type Catalog struct {
	jobs []Job
}

// New builds a catalog over the given postings, in the given order.
func New(jobs []Job) *Catalog {
	return &Catalog{jobs: append([]Job(nil), jobs...)}
}

// Default returns a catalog over the fixture postings.
func Default() *Catalog {
	return New(Fixtures())
}

// All returns every posting in catalog order.
func (c *Catalog) All() []Job {
	return append([]Job(nil), c.jobs...)
}

// Len returns the number of postings.
func (c *Catalog) Len() int {
	return len(c.jobs)
}

// Find returns the posting with the given id.
func (c *Catalog) Find(id string) (Job, bool) {
	for _, j := range c.jobs {
		if j.ID == id {
			return j, true
		}
	}
	return Job{}, false
}

// Featured returns the first n postings; the home page shows three.
func (c *Catalog) Featured(n int) []Job {
	if n > len(c.jobs) {
		n = len(c.jobs)
	}
	if n < 0 {
		n = 0
	}
	return append([]Job(nil), c.jobs[:n]...)
}

// Open returns the postings still accepting applications, in catalog order.
func (c *Catalog) Open() []Job {
	out := make([]Job, 0, len(c.jobs))
	for _, j := range c.jobs {
		if j.Status == StatusOpen {
			out = append(out, j)
		}
	}
	return out
}

// Search applies the filter to the catalog, preserving catalog order.
func (c *Catalog) Search(f Filter) []Job {
	return Apply(c.jobs, f)
}
