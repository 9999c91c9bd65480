package jobnest

import "time"

// Demo profiles substituted on login in place of a backend profile fetch.
// There is no profile service in this design, so login assigns a fixed
// per-role fixture; a real deployment replaces this with an explicit
// profile-fetch call whose absence is an error, not a default.

// DemoProfile returns the fixed demo profile for the role, stamped with the
// provider-issued id and email.
func DemoProfile(role Role, id, email string, now time.Time) *Profile {
	switch role {
	case RoleProvider:
		return demoProvider(id, email, now)
	default:
		return demoSeeker(id, email, now)
	}
}

func demoSeeker(id, email string, now time.Time) *Profile {
	return &Profile{
		ID:        id,
		Name:      "Alex Johnson",
		Email:     email,
		Role:      RoleSeeker,
		PhotoURL:  "https://images.pexels.com/photos/1222271/pexels-photo-1222271.jpeg",
		CreatedAt: now,
		Seeker: &SeekerFields{
			Skills:      []string{"JavaScript", "React", "CSS", "HTML"},
			Experience:  "2 years",
			Education:   "Bachelor's in Computer Science",
			Location:    "San Francisco, CA",
			Bio:         "Frontend developer passionate about creating beautiful user experiences.",
			SavedJobs:   []string{},
			AppliedJobs: []string{},
		},
	}
}

func demoProvider(id, email string, now time.Time) *Profile {
	return &Profile{
		ID:        id,
		Name:      "Sarah Miller",
		Email:     email,
		Role:      RoleProvider,
		PhotoURL:  "https://images.pexels.com/photos/1181686/pexels-photo-1181686.jpeg",
		CreatedAt: now,
		Provider: &ProviderFields{
			CompanyName: "TechCorp Solutions",
			Industry:    "Technology",
			CompanySize: "50-100",
			Location:    "San Francisco, CA",
			Website:     "https://techcorp-example.com",
			Description: "Innovative tech company specializing in web and mobile applications.",
			PostedJobs:  []string{},
		},
	}
}
