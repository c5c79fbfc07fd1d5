package validators

import (
	"context"
	"encoding/base64"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-vault-gate/models"
)

const (
	FieldID             = "id"
	FieldName           = "name"
	FieldCategory       = "category"
	FieldCipheredTriple = "ciphered_triple"
	FieldProjectID      = "project_id"
	FieldColor          = "color"
	FieldAction         = "action"
	FieldToken          = "token"
)

// MaxNameLength bounds secret and project names, in runes.
const MaxNameLength = 200

var (
	hexColor  = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	totpToken = regexp.MustCompile(`^[0-9]{6}$`)
)

// VaultValidator implements the Validator interface for the payloads of the
// vault API: SecretPayload, ProjectPayload and TOTPRequest.
//
// Value and pointer forms are accepted. Optional field names restrict
// validation to a subset; without them a default set per type is checked.
type VaultValidator struct{}

func NewVaultValidator() Validator {
	return &VaultValidator{}
}

func (v *VaultValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SecretPayload:
		return v.validateSecretPayload(ctx, value, fields...)
	case *models.SecretPayload:
		return v.validateSecretPayload(ctx, *value, fields...)

	case models.ProjectPayload:
		return v.validateProjectPayload(ctx, value, fields...)
	case *models.ProjectPayload:
		return v.validateProjectPayload(ctx, *value, fields...)

	case models.TOTPRequest:
		return v.validateTOTPRequest(ctx, value, fields...)
	case *models.TOTPRequest:
		return v.validateTOTPRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateSecretPayload checks a secret create or update body.
//
// Default fields: Name, Category, CipheredTriple, ProjectID. ID is only
// checked when asked for, since creates carry none.
func (v *VaultValidator) validateSecretPayload(_ context.Context, payload models.SecretPayload, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldCategory, FieldCipheredTriple, FieldProjectID}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(payload.ID) == "" {
				return ErrEmptyID
			}
		case FieldName:
			if err := validateName(payload.Name); err != nil {
				return err
			}
		case FieldCategory:
			if !payload.Category.Valid() {
				return ErrInvalidCategory
			}
		case FieldCipheredTriple:
			if err := validateTriple(payload.CipheredTriple); err != nil {
				return err
			}
		case FieldProjectID:
			if payload.ProjectID != nil && strings.TrimSpace(*payload.ProjectID) == "" {
				return ErrEmptyProjectID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateProjectPayload checks a project body. Default fields: Name, Color.
// An empty color is accepted and replaced by the default later.
func (v *VaultValidator) validateProjectPayload(_ context.Context, payload models.ProjectPayload, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldColor}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(payload.ID) == "" {
				return ErrEmptyID
			}
		case FieldName:
			if err := validateName(payload.Name); err != nil {
				return err
			}
		case FieldColor:
			if payload.Color != "" && !hexColor.MatchString(payload.Color) {
				return ErrInvalidColor
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateTOTPRequest checks a POST /vault/totp body. Default fields:
// Action, Token. The token is required for every action except setup.
func (v *VaultValidator) validateTOTPRequest(_ context.Context, request models.TOTPRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAction, FieldToken}
	}

	for _, f := range fields {
		switch f {
		case FieldAction:
			switch request.Action {
			case models.TOTPActionSetup, models.TOTPActionVerify, models.TOTPActionValidate, models.TOTPActionDisable:
			default:
				return ErrInvalidAction
			}
		case FieldToken:
			if request.Action == models.TOTPActionSetup {
				continue
			}
			if !totpToken.MatchString(strings.TrimSpace(request.Token)) {
				return ErrInvalidTOTPToken
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

func validateTriple(triple models.CipheredTriple) error {
	if !triple.Complete() {
		return ErrIncompleteTriple
	}
	for _, part := range []string{triple.Ciphertext, triple.IV, triple.Salt} {
		if _, err := base64.StdEncoding.DecodeString(part); err != nil {
			return ErrInvalidBase64
		}
	}
	return nil
}
