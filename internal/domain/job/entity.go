package job

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidJobType           = errors.New("invalid job type")
	ErrInvalidExperienceLevel   = errors.New("invalid experience level")
	ErrInvalidApplicationStatus = errors.New("invalid application status")
)

type Type string

const (
	TypeFullTime   Type = "FT"
	TypePartTime   Type = "PT"
	TypeContract   Type = "CT"
	TypeInternship Type = "IN"
	TypeRemote     Type = "RM"
)

func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToUpper(strings.TrimSpace(s))); t {
	case TypeFullTime, TypePartTime, TypeContract, TypeInternship, TypeRemote:
		return t, nil
	default:
		return "", ErrInvalidJobType
	}
}

type ExperienceLevel string

const (
	LevelEntry   ExperienceLevel = "EN"
	LevelJunior  ExperienceLevel = "JR"
	LevelMid     ExperienceLevel = "MD"
	LevelSenior  ExperienceLevel = "SR"
	LevelLead    ExperienceLevel = "LD"
	LevelManager ExperienceLevel = "MG"
)

func ParseExperienceLevel(s string) (ExperienceLevel, error) {
	switch l := ExperienceLevel(strings.ToUpper(strings.TrimSpace(s))); l {
	case LevelEntry, LevelJunior, LevelMid, LevelSenior, LevelLead, LevelManager:
		return l, nil
	default:
		return "", ErrInvalidExperienceLevel
	}
}

type Posting struct {
	ID              uuid.UUID
	RecruiterID     uuid.UUID
	Title           string
	Description     string
	Location        string
	Type            Type
	ExperienceLevel ExperienceLevel
	RequiredSkills  []string
	SalaryMin       *float64
	SalaryMax       *float64
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "P"
	ApplicationReviewing   ApplicationStatus = "R"
	ApplicationShortlisted ApplicationStatus = "S"
	ApplicationRejected    ApplicationStatus = "RJ"
	ApplicationHired       ApplicationStatus = "H"
)

func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	switch st := ApplicationStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case ApplicationPending, ApplicationReviewing, ApplicationShortlisted, ApplicationRejected, ApplicationHired:
		return st, nil
	default:
		return "", ErrInvalidApplicationStatus
	}
}

type Application struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	ApplicantID uuid.UUID
	DocumentID  uuid.UUID
	Status      ApplicationStatus
	CreatedAt   time.Time
}

// SavedJob is a bookmark a user keeps on a posting. Job is filled when listing.
type SavedJob struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	JobID     uuid.UUID
	CreatedAt time.Time
	Job       Posting
}
