package jobnest

import (
	"net/http"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/google/uuid"

	"github.com/jobnest/go-jobnest/catalog"
)

// Controller exposes the session operations and the catalog to the view
// layer over HTTP. It is transport plumbing only; all session semantics live
// in Manager and all filtering in catalog.
type Controller struct {
	session *Manager
	catalog *catalog.Catalog
	logger  Logger

	mu      sync.Mutex
	applied map[string]map[string]struct{} // job id -> seeker ids
}

// ControllerOption customizes controller construction.
type ControllerOption func(*Controller)

// WithControllerLogger overrides the fallback logger.
func WithControllerLogger(logger Logger) ControllerOption {
	return func(ct *Controller) {
		if logger != nil {
			ct.logger = logger
		}
	}
}

// NewController builds a controller over the session manager and catalog.
func NewController(session *Manager, cat *catalog.Catalog, opts ...ControllerOption) *Controller {
	ct := &Controller{
		session: session,
		catalog: cat,
		logger:  defLogger{},
		applied: map[string]map[string]struct{}{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(ct)
		}
	}
	return ct
}

// RegisterRoutes mounts the controller on a fiber router.
func (ct *Controller) RegisterRoutes(app fiber.Router) {
	app.Post("/auth/login", ct.Login)
	app.Post("/auth/signup", ct.Signup)
	app.Post("/auth/logout", ct.Logout)
	app.Get("/auth/me", ct.Me)

	app.Get("/jobs", ct.ListJobs)
	app.Get("/jobs/:id", ct.GetJob)
	app.Post("/jobs", ct.CreateJob)
	app.Post("/jobs/:id/apply", ct.Apply)
}

// LoginRequest is the login form payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"userType"`
}

// Validate checks the payload before it reaches the session manager.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.Role, validation.Required, validation.In(string(RoleSeeker), string(RoleProvider))),
	)
}

// Login verifies credentials and publishes the session.
func (ct *Controller) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "malformed login payload")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	role, _ := ParseRole(req.Role)
	if err := ct.session.Login(c.Context(), req.Email, req.Password, role); err != nil {
		return ct.renderError(c, err)
	}

	return c.JSON(fiber.Map{"user": ct.session.CurrentUser()})
}

// SignupRequest is the account creation payload. Role-specific fields beyond
// the common ones are optional and filled in from the matching section.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"userType"`

	Seeker   *SeekerFields   `json:"seeker,omitempty"`
	Provider *ProviderFields `json:"provider,omitempty"`
}

// Validate checks the payload before account creation is attempted.
func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.Role, validation.Required, validation.In(string(RoleSeeker), string(RoleProvider))),
	)
}

func (r SignupRequest) profile() *Profile {
	role, _ := ParseRole(r.Role)
	p := &Profile{
		Name:     r.Name,
		Email:    r.Email,
		Role:     role,
		Seeker:   r.Seeker,
		Provider: r.Provider,
	}
	// Guarantee the role/fields agreement the manager validates.
	switch role {
	case RoleSeeker:
		if p.Seeker == nil {
			p.Seeker = &SeekerFields{}
		}
		p.Provider = nil
	case RoleProvider:
		if p.Provider == nil {
			p.Provider = &ProviderFields{}
		}
		p.Seeker = nil
	}
	return p
}

// Signup creates the account and publishes the new session.
func (ct *Controller) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "malformed signup payload")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := ct.session.Signup(c.Context(), req.profile(), req.Password); err != nil {
		return ct.renderError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"user": ct.session.CurrentUser()})
}

// Logout ends the session. The local session is gone even when the provider
// teardown fails, so that failure surfaces as an error with the session
// already cleared.
func (ct *Controller) Logout(c *fiber.Ctx) error {
	if err := ct.session.Logout(c.Context()); err != nil {
		return ct.renderError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Me reports the current session snapshot.
func (ct *Controller) Me(c *fiber.Ctx) error {
	snap := ct.session.Snapshot()
	return c.JSON(fiber.Map{
		"user":    snap.User,
		"loading": snap.Loading,
	})
}

// ListJobs returns the catalog filtered by the q, location, and type query
// parameters, in catalog order.
func (ct *Controller) ListJobs(c *fiber.Ctx) error {
	jobType, ok := catalog.ParseType(c.Query("type"))
	if !ok {
		return badRequest(c, "unknown job type")
	}

	jobs := ct.catalog.Search(catalog.Filter{
		Term:     c.Query("q"),
		Location: c.Query("location"),
		Type:     jobType,
	})

	return c.JSON(fiber.Map{
		"count": len(jobs),
		"jobs":  jobs,
	})
}

// GetJob returns one posting by id.
func (ct *Controller) GetJob(c *fiber.Ctx) error {
	job, ok := ct.catalog.Find(c.Params("id"))
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "job not found"})
	}
	return c.JSON(job)
}

// JobRequest is the provider-facing posting form payload.
type JobRequest struct {
	Title            string   `json:"title"`
	Location         string   `json:"location"`
	Type             string   `json:"jobType"`
	Salary           string   `json:"salary"`
	Description      string   `json:"description"`
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
}

// Validate checks the posting form.
func (r JobRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Location, validation.Required),
		validation.Field(&r.Type, validation.Required, validation.In(
			string(catalog.TypeFullTime),
			string(catalog.TypePartTime),
			string(catalog.TypeContract),
			string(catalog.TypeInternship),
		)),
		validation.Field(&r.Description, validation.Required),
	)
}

// CreateJob accepts a posting from a provider. The catalog is static fixture
// data, so the posting is validated and logged, not persisted.
func (ct *Controller) CreateJob(c *fiber.Ctx) error {
	user, err := ct.requireRole(c, RoleProvider)
	if err != nil || user == nil {
		return err
	}

	var req JobRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "malformed job payload")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	ct.logger.Info("job posting received from %s (not persisted): %s", user.ID, print.MaybePrettyJSON(req))

	return c.Status(http.StatusAccepted).JSON(fiber.Map{
		"status": "received",
		"title":  req.Title,
	})
}

// Apply records a seeker's application against a posting. The catalog itself
// is immutable fixture data, so applications live in per-process controller
// state; at-most-once per seeker and posting is enforced there.
func (ct *Controller) Apply(c *fiber.Ctx) error {
	user, err := ct.requireRole(c, RoleSeeker)
	if err != nil || user == nil {
		return err
	}

	job, ok := ct.catalog.Find(c.Params("id"))
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "job not found"})
	}
	if job.Status != catalog.StatusOpen {
		return c.Status(http.StatusConflict).JSON(fiber.Map{"error": "job is closed"})
	}
	if !ct.recordApplication(job.ID, user.ID) {
		return c.Status(http.StatusConflict).JSON(fiber.Map{"error": "already applied"})
	}

	application := catalog.Application{
		ID:         uuid.NewString(),
		JobID:      job.ID,
		SeekerID:   user.ID,
		ProviderID: job.ProviderID,
		Status:     catalog.ApplicationPending,
		CreatedAt:  ct.session.now(),
	}

	return c.Status(http.StatusCreated).JSON(application)
}

// recordApplication marks the seeker as having applied to the posting. It
// reports false when the pair was already recorded.
func (ct *Controller) recordApplication(jobID, seekerID string) bool {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	seen := ct.applied[jobID]
	if _, dup := seen[seekerID]; dup {
		return false
	}
	if seen == nil {
		seen = map[string]struct{}{}
		ct.applied[jobID] = seen
	}
	seen[seekerID] = struct{}{}
	return true
}

// requireRole applies the route guard inline. A nil profile with a nil error
// means the response has already been written.
func (ct *Controller) requireRole(c *fiber.Ctx, role Role) (*Profile, error) {
	snap := ct.session.Snapshot()
	outcome := EvaluateGuard(snap, role)

	switch outcome.Decision {
	case DecisionPending:
		c.Set(fiber.HeaderRetryAfter, "1")
		return nil, c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "session state is still resolving",
		})
	case DecisionRedirect:
		status := http.StatusSeeOther
		if c.Method() == fiber.MethodGet {
			status = http.StatusFound
		}
		return nil, c.Redirect(outcome.RedirectTo, status)
	}

	return snap.User, nil
}

func (ct *Controller) renderError(c *fiber.Ctx, err error) error {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		ct.logger.Error("unexpected error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal error",
		})
	}

	ct.logger.Info("request failed: %s (%s)", rich.Message, rich.TextCode)

	status := rich.Code
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return c.Status(status).JSON(fiber.Map{
		"error": rich.Message,
		"code":  rich.TextCode,
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
