package service

import (
	"errors"
	"testing"

	"github.com/MKhiriev/go-vault-gate/internal/mock"
	"github.com/MKhiriev/go-vault-gate/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestMasterKeyVerifier_Verify(t *testing.T) {
	triple := models.CipheredTriple{Ciphertext: "c", IV: "i", Salt: "s"}

	tests := []struct {
		name     string
		password string
		setup    func(c *mock.MockCipherPrimitive)
		wantErr  error
	}{
		{
			name:     "empty password",
			password: "",
			setup:    func(*mock.MockCipherPrimitive) {},
			wantErr:  ErrVerificationFailed,
		},
		{
			name:     "encrypt fails",
			password: testPassword,
			setup: func(c *mock.MockCipherPrimitive) {
				c.EXPECT().Encrypt([]byte(verifierProbe), []byte(testPassword)).
					Return(models.CipheredTriple{}, errors.New("kdf failure"))
			},
			wantErr: ErrVerificationFailed,
		},
		{
			name:     "decrypt fails",
			password: testPassword,
			setup: func(c *mock.MockCipherPrimitive) {
				c.EXPECT().Encrypt(gomock.Any(), gomock.Any()).Return(triple, nil)
				c.EXPECT().Decrypt(triple, []byte(testPassword)).Return(nil, errors.New("auth tag mismatch"))
			},
			wantErr: ErrVerificationFailed,
		},
		{
			name:     "plaintext differs",
			password: testPassword,
			setup: func(c *mock.MockCipherPrimitive) {
				c.EXPECT().Encrypt(gomock.Any(), gomock.Any()).Return(triple, nil)
				c.EXPECT().Decrypt(triple, gomock.Any()).Return([]byte("something-else"), nil)
			},
			wantErr: ErrVerificationFailed,
		},
		{
			name:     "round trip matches",
			password: testPassword,
			setup: func(c *mock.MockCipherPrimitive) {
				c.EXPECT().Encrypt(gomock.Any(), gomock.Any()).Return(triple, nil)
				c.EXPECT().Decrypt(triple, gomock.Any()).Return([]byte(verifierProbe), nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			cipher := mock.NewMockCipherPrimitive(ctrl)
			tt.setup(cipher)

			err := NewMasterKeyVerifier(cipher).Verify([]byte(tt.password))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestMasterKeyVerifier_RealCipher(t *testing.T) {
	v := NewMasterKeyVerifier(fastCipher())

	assert.NoError(t, v.Verify([]byte(testPassword)))
	assert.ErrorIs(t, v.Verify(nil), ErrVerificationFailed)
}
