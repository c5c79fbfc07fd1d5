package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/MKhiriev/go-vault-gate/models"
	"github.com/stretchr/testify/assert"
)

func completeSecret() models.SecretPayload {
	return models.SecretPayload{
		ID:             "s-1",
		Name:           "db password",
		Category:       models.CategoryPassword,
		CipheredTriple: models.CipheredTriple{Ciphertext: "Y3Q=", IV: "aXY=", Salt: "c2FsdA=="},
	}
}

func TestVaultValidator_SecretPayload(t *testing.T) {
	v := NewVaultValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, completeSecret()))
	p := completeSecret()
	assert.NoError(t, v.Validate(ctx, &p), "pointer form")

	noID := completeSecret()
	noID.ID = ""
	assert.NoError(t, v.Validate(ctx, noID), "id is not a default field")
	assert.ErrorIs(t, v.Validate(ctx, noID, FieldID), ErrEmptyID)

	long := completeSecret()
	long.Name = strings.Repeat("x", MaxNameLength+1)
	assert.ErrorIs(t, v.Validate(ctx, long), ErrNameTooLong)

	partial := completeSecret()
	partial.CipheredTriple = models.CipheredTriple{Ciphertext: "Y3Q="}
	assert.ErrorIs(t, v.Validate(ctx, partial), ErrIncompleteTriple)

	assert.ErrorIs(t, v.Validate(ctx, completeSecret(), "value"), ErrUnknownField)
}

func TestVaultValidator_ProjectPayload(t *testing.T) {
	v := NewVaultValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.ProjectPayload{Name: "infra"}))
	assert.NoError(t, v.Validate(ctx, models.ProjectPayload{Name: "infra", Color: "#0EA5E9"}))
	assert.ErrorIs(t, v.Validate(ctx, models.ProjectPayload{Name: "infra", Color: "#0EA5E"}), ErrInvalidColor)
	assert.ErrorIs(t, v.Validate(ctx, &models.ProjectPayload{}), ErrEmptyName)
	assert.ErrorIs(t, v.Validate(ctx, models.ProjectPayload{Name: "infra"}, FieldID), ErrEmptyID)
}

func TestVaultValidator_TOTPRequest(t *testing.T) {
	v := NewVaultValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		request models.TOTPRequest
		wantErr error
	}{
		{"setup needs no token", models.TOTPRequest{Action: models.TOTPActionSetup}, nil},
		{"validate", models.TOTPRequest{Action: models.TOTPActionValidate, Token: "123456"}, nil},
		{"token is trimmed", models.TOTPRequest{Action: models.TOTPActionVerify, Token: " 123456 "}, nil},
		{"short token", models.TOTPRequest{Action: models.TOTPActionDisable, Token: "12345"}, ErrInvalidTOTPToken},
		{"letters", models.TOTPRequest{Action: models.TOTPActionValidate, Token: "12a456"}, ErrInvalidTOTPToken},
		{"unknown action", models.TOTPRequest{Action: "reset", Token: "123456"}, ErrInvalidAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.request)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestVaultValidator_UnsupportedType(t *testing.T) {
	assert.ErrorIs(t, NewVaultValidator().Validate(context.Background(), models.Secret{}), ErrUnsupportedType)
}
