package intake

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// UserType distinguishes individual clients from companies.
type UserType string

// User types.
const (
	UserIndividual UserType = "individual"
	UserCompany    UserType = "company"
)

// ProfileInput is the raw profile form as typed by the user.
type ProfileInput struct {
	UserType    string `json:"user_type" validate:"required,oneof=individual company client"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required"`
	Company     string `json:"company,omitempty"`
	Role        string `json:"role,omitempty"`
	CompanySize string `json:"company_size,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Budget      string `json:"budget,omitempty"`
	Timeline    string `json:"timeline,omitempty"`
	Description string `json:"description,omitempty"`
}

// ProfileRecord is the accepted profile. It is produced once per session and
// only read afterwards.
type ProfileRecord struct {
	UserType    UserType `json:"user_type"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Company     string   `json:"company,omitempty"`
	Role        string   `json:"role,omitempty"`
	CompanySize string   `json:"company_size,omitempty"`
	Industry    string   `json:"industry,omitempty"`
	Budget      string   `json:"budget,omitempty"`
	Timeline    string   `json:"timeline,omitempty"`
	Description string   `json:"description,omitempty"`
}

// ProfileForm gates the profile stage: userType, name and email must be
// non-blank. Nothing is checked beyond presence (no e-mail format checks).
type ProfileForm struct {
	validate *validator.Validate
	record   *ProfileRecord
}

// NewProfileForm creates an empty profile form.
func NewProfileForm() *ProfileForm {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &ProfileForm{validate: v}
}

// Submit validates in and, on success, returns the accepted record. A
// failed submission leaves the form open; a successful one closes it.
func (f *ProfileForm) Submit(in ProfileInput) (ProfileRecord, error) {
	if f.record != nil {
		return ProfileRecord{}, ErrAlreadySubmitted
	}

	in = trimProfile(in)
	if err := f.validate.Struct(in); err != nil {
		return ProfileRecord{}, profileError(err)
	}

	record := ProfileRecord{
		UserType:    normalizeUserType(in.UserType),
		Name:        in.Name,
		Email:       in.Email,
		Company:     in.Company,
		Role:        in.Role,
		CompanySize: in.CompanySize,
		Industry:    in.Industry,
		Budget:      in.Budget,
		Timeline:    in.Timeline,
		Description: in.Description,
	}
	f.record = &record
	return record, nil
}

// Record returns the accepted profile, if any.
func (f *ProfileForm) Record() (ProfileRecord, bool) {
	if f.record == nil {
		return ProfileRecord{}, false
	}
	return *f.record, true
}

func trimProfile(in ProfileInput) ProfileInput {
	return ProfileInput{
		UserType:    strings.ToLower(strings.TrimSpace(in.UserType)),
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.TrimSpace(in.Email),
		Company:     strings.TrimSpace(in.Company),
		Role:        strings.TrimSpace(in.Role),
		CompanySize: strings.TrimSpace(in.CompanySize),
		Industry:    strings.TrimSpace(in.Industry),
		Budget:      strings.TrimSpace(in.Budget),
		Timeline:    strings.TrimSpace(in.Timeline),
		Description: strings.TrimSpace(in.Description),
	}
}

// normalizeUserType maps the legacy "client" value onto individual.
func normalizeUserType(s string) UserType {
	if s == "client" {
		return UserIndividual
	}
	return UserType(s)
}

func profileError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	pe := &ProfileError{}
	for _, fe := range validationErrors {
		if fe.Tag() == "required" {
			pe.Missing = append(pe.Missing, fe.Field())
		} else {
			pe.Invalid = append(pe.Invalid, fe.Field())
		}
	}
	return pe
}
