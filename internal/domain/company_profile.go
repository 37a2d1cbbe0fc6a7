package domain

import "time"

// CompanyProfile is owned by a company-role user. Verification is monotone:
// an admin moves IsVerified from false to true and nothing moves it back.
type CompanyProfile struct {
	ID          string    `json:"id"`
	CompanyName string    `json:"company_name"`
	Description string    `json:"description,omitempty"`
	Industry    string    `json:"industry,omitempty"`
	Location    string    `json:"location,omitempty"`
	LogoURL     string    `json:"logo_url,omitempty"`
	Website     string    `json:"website,omitempty"`
	IsVerified  bool      `json:"is_verified"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Verify marks the profile as verified. Verifying an already verified
// profile is a no-op.
func (p *CompanyProfile) Verify() {
	if p.IsVerified {
		return
	}
	p.IsVerified = true
	p.UpdatedAt = time.Now().UTC()
}

// CanPostJobs reports whether the company may create job postings
func (p *CompanyProfile) CanPostJobs() bool {
	return p.IsVerified
}
