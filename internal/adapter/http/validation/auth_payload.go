package validation

import (
	"encoding/json"
	"errors"
	"strings"

	"taskflow/internal/adapter/http/dto"
	"taskflow/internal/core/domain"
)

var (
	ErrInvalidLoginPayload    = errors.New("invalid login payload")
	ErrInvalidRegisterPayload = errors.New("invalid register payload")
	ErrInvalidProfilePayload  = errors.New("invalid profile payload")
)

func BuildCredentials(req dto.LoginRequest) (domain.Credentials, error) {
	identifier := strings.TrimSpace(req.Username)
	if identifier == "" || req.Password == "" {
		return domain.Credentials{}, ErrInvalidLoginPayload
	}
	return domain.Credentials{Identifier: identifier, Secret: req.Password}, nil
}

func BuildRegisterUserInput(req dto.RegisterRequest) (domain.RegisterUserInput, error) {
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return domain.RegisterUserInput{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || req.Password == "" {
		return domain.RegisterUserInput{}, ErrInvalidRegisterPayload
	}

	return domain.RegisterUserInput{
		Email:    strings.TrimSpace(req.Email),
		Name:     name,
		Password: req.Password,
		Role:     role,
	}, nil
}

// BuildUpdateProfileInput requires at least one known field and rejects
// explicit nulls, which would otherwise be indistinguishable from absence.
func BuildUpdateProfileInput(req dto.UpdateProfileRequest, raw map[string]json.RawMessage) (domain.UpdateProfileInput, error) {
	if !hasJSONField(raw, "name") && !hasJSONField(raw, "email") && !hasJSONField(raw, "password") {
		return domain.UpdateProfileInput{}, ErrInvalidProfilePayload
	}

	for _, field := range []string{"name", "email", "password"} {
		if hasJSONField(raw, field) && isJSONNull(raw[field]) {
			return domain.UpdateProfileInput{}, ErrInvalidProfilePayload
		}
	}

	var input domain.UpdateProfileInput
	if req.Name != nil {
		value := strings.TrimSpace(*req.Name)
		if value == "" {
			return domain.UpdateProfileInput{}, ErrInvalidProfilePayload
		}
		input.Name = &value
	}
	if req.Email != nil {
		value := strings.TrimSpace(*req.Email)
		input.Email = &value
	}
	if req.Password != nil {
		if *req.Password == "" {
			return domain.UpdateProfileInput{}, ErrInvalidProfilePayload
		}
		value := *req.Password
		input.Password = &value
	}

	return input, nil
}
