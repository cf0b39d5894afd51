package handler

import (
	"regexp"
	"strings"

	"farmbook/internal/domain"
)

// Field-level validation for the auth surface. Failures are collected into
// a per-field map so the client can render errors next to each form input.

var (
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobileRe = regexp.MustCompile(`^[0-9]{10}$`)
)

type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Mobile   string `json:"mobile"`
	Gender   string `json:"gender"`
	Address  string `json:"address"`
	Role     *int   `json:"role"`
}

// Validate normalizes the input in place (trimmed name/mobile/address,
// lowercased email) and returns the per-field errors, empty when valid.
func (in *SignupInput) Validate() map[string][]string {
	errs := map[string][]string{}

	in.Name = strings.TrimSpace(in.Name)
	switch {
	case in.Name == "":
		errs["name"] = append(errs["name"], "Name is required")
	case len(in.Name) < 2:
		errs["name"] = append(errs["name"], "Name must be at least 2 characters")
	case len(in.Name) > 100:
		errs["name"] = append(errs["name"], "Name must be less than 100 characters")
	}

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email != "" && !emailRe.MatchString(in.Email) {
		errs["email"] = append(errs["email"], "Invalid email format")
	}

	switch {
	case in.Password == "":
		errs["password"] = append(errs["password"], "Password is required")
	case len(in.Password) < 6:
		errs["password"] = append(errs["password"], "Password must be at least 6 characters")
	case len(in.Password) > 100:
		errs["password"] = append(errs["password"], "Password must be less than 100 characters")
	}

	in.Mobile = strings.TrimSpace(in.Mobile)
	switch {
	case in.Mobile == "":
		errs["mobile"] = append(errs["mobile"], "Mobile number is required")
	case !mobileRe.MatchString(in.Mobile):
		errs["mobile"] = append(errs["mobile"], "Mobile must be exactly 10 digits")
	}

	switch in.Gender {
	case "", domain.GenderMale, domain.GenderFemale, domain.GenderOther:
	default:
		errs["gender"] = append(errs["gender"], "Gender must be male, female or other")
	}

	in.Address = strings.TrimSpace(in.Address)
	if in.Address != "" && len(in.Address) < 5 {
		errs["address"] = append(errs["address"], "Address must be at least 5 characters if provided")
	}

	if in.Role != nil && !domain.Role(*in.Role).Valid() {
		errs["role"] = append(errs["role"], "Role must be 0, 1 or 2")
	}

	return errs
}

// RoleOrDefault applies the consumer default when the field was omitted.
func (in *SignupInput) RoleOrDefault() domain.Role {
	if in.Role == nil {
		return domain.RoleConsumer
	}
	return domain.Role(*in.Role)
}

type LoginInput struct {
	EmailOrMobile string `json:"emailOrMobile"`
	Password      string `json:"password"`
}

func (in *LoginInput) Validate() map[string][]string {
	errs := map[string][]string{}

	in.EmailOrMobile = strings.TrimSpace(in.EmailOrMobile)
	if in.EmailOrMobile == "" {
		errs["emailOrMobile"] = append(errs["emailOrMobile"], "Email or mobile number is required")
	}

	switch {
	case in.Password == "":
		errs["password"] = append(errs["password"], "Password is required")
	case len(in.Password) < 6:
		errs["password"] = append(errs["password"], "Password must be at least 6 characters")
	}

	return errs
}

// IsMobile reports whether the login identifier should hit the mobile
// lookup instead of the email one.
func (in *LoginInput) IsMobile() bool { return mobileRe.MatchString(in.EmailOrMobile) }
