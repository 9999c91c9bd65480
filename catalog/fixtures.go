package catalog

import "time"

// Fixtures returns the static posting dataset the client ships with. Four of
// the five postings are part-time; the fifth is an internship.
func Fixtures() []Job {
	return []Job{
		{
			ID:          "1",
			Title:       "Frontend Developer",
			Company:     "TechCorp Solutions",
			ProviderID:  "provider1",
			Location:    "San Francisco, CA",
			Type:        TypePartTime,
			Salary:      "$30-40/hr",
			Description: "We are looking for a skilled frontend developer to join our team and help build modern web applications.",
			Requirements: []string{
				"Proficiency in React and TypeScript",
				"Experience with modern CSS frameworks",
				"Understanding of responsive design principles",
				"Good communication skills",
			},
			Responsibilities: []string{
				"Develop and maintain frontend components",
				"Collaborate with design team",
				"Optimize applications for performance",
				"Write clean, maintainable code",
			},
			CreatedAt:  time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC),
			Applicants: []string{},
			Status:     StatusOpen,
			ImageURL:   "https://images.pexels.com/photos/3183150/pexels-photo-3183150.jpeg",
		},
		{
			ID:          "2",
			Title:       "Marketing Assistant",
			Company:     "Brand Builders Inc.",
			ProviderID:  "provider2",
			Location:    "Remote",
			Type:        TypePartTime,
			Salary:      "$25-30/hr",
			Description: "Join our marketing team to help create and execute digital marketing campaigns for our clients.",
			Requirements: []string{
				"Basic understanding of digital marketing principles",
				"Excellent written communication",
				"Social media savvy",
				"Ability to work independently",
			},
			Responsibilities: []string{
				"Assist with social media content creation",
				"Help monitor campaign performance",
				"Research market trends",
				"Support the marketing team with administrative tasks",
			},
			CreatedAt:  time.Date(2023, time.June, 5, 0, 0, 0, 0, time.UTC),
			Applicants: []string{},
			Status:     StatusOpen,
			ImageURL:   "https://images.pexels.com/photos/1181406/pexels-photo-1181406.jpeg",
		},
		{
			ID:          "3",
			Title:       "Customer Support Representative",
			Company:     "ServiceFirst Co.",
			ProviderID:  "provider3",
			Location:    "Chicago, IL",
			Type:        TypePartTime,
			Salary:      "$18-22/hr",
			Description: "We need friendly, patient individuals to join our customer support team and help our customers with their inquiries.",
			Requirements: []string{
				"Excellent communication skills",
				"Problem-solving abilities",
				"Basic technical knowledge",
				"Customer service experience a plus",
			},
			Responsibilities: []string{
				"Answer customer inquiries via phone and email",
				"Troubleshoot basic technical issues",
				"Escalate complex problems to the appropriate team",
				"Maintain customer satisfaction",
			},
			CreatedAt:  time.Date(2023, time.June, 10, 0, 0, 0, 0, time.UTC),
			Applicants: []string{},
			Status:     StatusOpen,
			ImageURL:   "https://images.pexels.com/photos/7709018/pexels-photo-7709018.jpeg",
		},
		{
			ID:          "4",
			Title:       "Data Entry Specialist",
			Company:     "InfoProcess LLC",
			ProviderID:  "provider4",
			Location:    "Remote",
			Type:        TypePartTime,
			Salary:      "$15-20/hr",
			Description: "Looking for detail-oriented individuals to help with data entry tasks for our growing database.",
			Requirements: []string{
				"Fast and accurate typing skills",
				"Attention to detail",
				"Basic spreadsheet knowledge",
				"Reliable internet connection",
			},
			Responsibilities: []string{
				"Enter data from various sources into our system",
				"Verify data accuracy",
				"Format and organize information",
				"Meet weekly data entry targets",
			},
			CreatedAt:  time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC),
			Applicants: []string{},
			Status:     StatusOpen,
			ImageURL:   "https://images.pexels.com/photos/669615/pexels-photo-669615.jpeg",
		},
		{
			ID:          "5",
			Title:       "Graphic Design Intern",
			Company:     "Creative Vision Studio",
			ProviderID:  "provider5",
			Location:    "Boston, MA",
			Type:        TypeInternship,
			Salary:      "$20/hr",
			Description: "Exciting opportunity for a creative graphic design student to gain real-world experience at our design studio.",
			Requirements: []string{
				"Currently enrolled in graphic design program",
				"Portfolio showcasing design skills",
				"Proficiency in Adobe Creative Suite",
				"Eager to learn and grow",
			},
			Responsibilities: []string{
				"Assist senior designers with projects",
				"Create social media graphics",
				"Help with brand identity development",
				"Participate in brainstorming sessions",
			},
			CreatedAt:  time.Date(2023, time.June, 20, 0, 0, 0, 0, time.UTC),
			Applicants: []string{},
			Status:     StatusOpen,
			ImageURL:   "https://images.pexels.com/photos/196644/pexels-photo-196644.jpeg",
		},
	}
}
