package dto

import (
	"errors"
	"testing"

	"github.com/internmatch/portal/internal/domain"
)

func TestSignupRequestValidate(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		wantRole domain.Role
		wantErr  bool
	}{
		{"student", "student", domain.RoleStudent, false},
		{"company uppercase", "COMPANY", domain.RoleCompany, false},
		{"admin rejected", "admin", "", true},
		{"unknown rejected", "manager", "", true},
		{"empty rejected", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := SignupRequest{Email: "a@b.co", Password: "password123", Role: tt.role}
			role, err := req.Validate()
			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Fatalf("Validate() error = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if role != tt.wantRole {
				t.Errorf("role = %q, want %q", role, tt.wantRole)
			}
		})
	}
}

func TestCreateJobRequestValidate(t *testing.T) {
	req := CreateJobRequest{Title: "Intern", Type: "Intern"}
	jobType, err := req.Validate()
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if jobType != domain.JobTypeIntern {
		t.Errorf("type = %q, want intern", jobType)
	}

	req.Type = "senior"
	if _, err := req.Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Validate() error = %v, want ErrValidation", err)
	}
}

func TestUpdateApplicationStatusRequestValidate(t *testing.T) {
	req := UpdateApplicationStatusRequest{Status: "reviewing"}
	status, err := req.Validate()
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if status != domain.ApplicationStatusReviewing {
		t.Errorf("status = %q", status)
	}

	// applied is a creation status, never a transition target
	req.Status = "applied"
	if _, err := req.Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Validate() error = %v, want ErrValidation", err)
	}
}

func TestJobListQueryValidate(t *testing.T) {
	q := JobListQuery{}
	if status, err := q.Validate(); err != nil || status != "" {
		t.Errorf("empty filter: status = %q, err = %v", status, err)
	}

	q.Status = "OPEN"
	status, err := q.Validate()
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if status != domain.JobStatusOpen {
		t.Errorf("status = %q, want open", status)
	}

	q.Status = "archived"
	if _, err := q.Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Validate() error = %v, want ErrValidation", err)
	}
}

func TestStudentProfileRequestValidate(t *testing.T) {
	req := StudentProfileRequest{FirstName: "A", LastName: "B"}
	if level, err := req.Validate(); err != nil || level != "" {
		t.Errorf("empty level: level = %q, err = %v", level, err)
	}

	req.ExperienceLevel = "junior"
	level, err := req.Validate()
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if level != domain.JobTypeJunior {
		t.Errorf("level = %q, want junior", level)
	}
}
