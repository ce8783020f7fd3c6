package payload

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/vasapolrittideah/devconnector-api/services/social-service/internal/usecase"
	"github.com/vasapolrittideah/devconnector-api/shared/validation"
)

// ProfileRequest creates or updates the caller's profile. Optional fields left out of the body are not changed.
type ProfileRequest struct {
	Status         string  `json:"status"         validate:"required"`
	Skills         string  `json:"skills"         validate:"required"`
	Company        *string `json:"company"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	Bio            *string `json:"bio"`
	GithubUsername *string `json:"githubusername"`
	YouTube        *string `json:"youtube"`
	Twitter        *string `json:"twitter"`
	Facebook       *string `json:"facebook"`
	LinkedIn       *string `json:"linkedin"`
	Instagram      *string `json:"instagram"`
}

func (r *ProfileRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"status": "Status is required",
		"skills": "Skills is required",
	}
}

func (r *ProfileRequest) ToParams() usecase.UpsertProfileParams {
	return usecase.UpsertProfileParams{
		Company:        r.Company,
		Website:        r.Website,
		Location:       r.Location,
		Status:         &r.Status,
		Skills:         SplitSkills(r.Skills),
		Bio:            r.Bio,
		GithubUsername: r.GithubUsername,
		YouTube:        r.YouTube,
		Twitter:        r.Twitter,
		Facebook:       r.Facebook,
		LinkedIn:       r.LinkedIn,
		Instagram:      r.Instagram,
	}
}

// SplitSkills splits a comma-separated skill list and trims each skill.
func SplitSkills(skills string) []string {
	out := []string{}
	for _, skill := range strings.Split(skills, ",") {
		if skill = strings.TrimSpace(skill); skill != "" {
			out = append(out, skill)
		}
	}
	return out
}

type ExperienceEntry struct {
	Title       string `json:"title"       validate:"required"`
	Company     string `json:"company"     validate:"required"`
	Location    string `json:"location"`
	From        string `json:"from"        validate:"required"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// ExperienceRequest is a single experience object or an array of them.
type ExperienceRequest struct {
	Entries []ExperienceEntry `json:"experience" validate:"min=1,dive"`
}

func (r *ExperienceRequest) UnmarshalJSON(data []byte) error {
	entries, err := decodeOneOrMany[ExperienceEntry](data)
	if err != nil {
		return err
	}
	r.Entries = entries
	return nil
}

func (r *ExperienceRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"experience": "Experience is required",
		"title":      "Title is required",
		"company":    "Company is required",
		"from":       "From date is required",
	}
}

func (r *ExperienceRequest) ToParams() ([]usecase.ExperienceParams, validation.Errors) {
	params := make([]usecase.ExperienceParams, 0, len(r.Entries))
	var errs validation.Errors

	for _, e := range r.Entries {
		from, to, dateErrs := parseDateRange(e.From, e.To)
		if dateErrs != nil {
			errs = append(errs, dateErrs...)
			continue
		}

		params = append(params, usecase.ExperienceParams{
			Title:       e.Title,
			Company:     e.Company,
			Location:    e.Location,
			From:        from,
			To:          to,
			Current:     e.Current,
			Description: e.Description,
		})
	}

	return params, errs
}

type EducationEntry struct {
	School       string `json:"school"       validate:"required"`
	Degree       string `json:"degree"       validate:"required"`
	FieldOfStudy string `json:"fieldofstudy" validate:"required"`
	From         string `json:"from"         validate:"required"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// EducationRequest is a single education object or an array of them.
type EducationRequest struct {
	Entries []EducationEntry `json:"education" validate:"min=1,dive"`
}

func (r *EducationRequest) UnmarshalJSON(data []byte) error {
	entries, err := decodeOneOrMany[EducationEntry](data)
	if err != nil {
		return err
	}
	r.Entries = entries
	return nil
}

func (r *EducationRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"education":    "Education is required",
		"school":       "School is required",
		"degree":       "Degree is required",
		"fieldofstudy": "Field of study is required",
		"from":         "From date is required",
	}
}

func (r *EducationRequest) ToParams() ([]usecase.EducationParams, validation.Errors) {
	params := make([]usecase.EducationParams, 0, len(r.Entries))
	var errs validation.Errors

	for _, e := range r.Entries {
		from, to, dateErrs := parseDateRange(e.From, e.To)
		if dateErrs != nil {
			errs = append(errs, dateErrs...)
			continue
		}

		params = append(params, usecase.EducationParams{
			School:       e.School,
			Degree:       e.Degree,
			FieldOfStudy: e.FieldOfStudy,
			From:         from,
			To:           to,
			Current:      e.Current,
			Description:  e.Description,
		})
	}

	return params, errs
}

func decodeOneOrMany[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var many []T
		if err := json.Unmarshal(trimmed, &many); err != nil {
			return nil, err
		}
		return many, nil
	}

	var one T
	if err := json.Unmarshal(trimmed, &one); err != nil {
		return nil, err
	}
	return []T{one}, nil
}

var dateLayouts = []string{time.DateOnly, time.RFC3339}

// ParseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
func ParseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseDateRange(fromValue, toValue string) (time.Time, *time.Time, validation.Errors) {
	var errs validation.Errors

	from, ok := ParseDate(fromValue)
	if !ok {
		errs = append(errs, validation.FieldError{Msg: "From date is invalid", Param: "from"})
	}

	var to *time.Time
	if toValue != "" {
		if t, ok := ParseDate(toValue); ok {
			to = &t
		} else {
			errs = append(errs, validation.FieldError{Msg: "To date is invalid", Param: "to"})
		}
	}

	return from, to, errs
}
