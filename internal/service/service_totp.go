// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-vault-gate/internal/clock"
	"github.com/MKhiriev/go-vault-gate/internal/config"
	"github.com/MKhiriev/go-vault-gate/internal/logger"
	"github.com/MKhiriev/go-vault-gate/internal/store"
	"github.com/MKhiriev/go-vault-gate/internal/utils"
	"github.com/MKhiriev/go-vault-gate/models"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// ReplayWindow is how long an accepted code stays spent. It covers the
// current 30 second step and one step of skew on either side.
const ReplayWindow = 90 * time.Second

var totpValidateOpts = totp.ValidateOpts{
	Period:    30,
	Skew:      1,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

type totpService struct {
	totpRepository store.TOTPRepository
	clock          clock.Clock

	issuer        string
	account       string
	tokenIssuer   string
	signKey       string
	grantDuration time.Duration

	mu        sync.Mutex
	usedCodes map[string]time.Time

	logger *logger.Logger
}

func NewTOTPService(totpRepository store.TOTPRepository, cfg config.ServerConfig, clk clock.Clock, logger *logger.Logger) TOTPService {
	return &totpService{
		totpRepository: totpRepository,
		clock:          clk,
		issuer:         cfg.TOTPIssuer,
		account:        cfg.TOTPAccount,
		tokenIssuer:    cfg.TokenIssuer,
		signKey:        cfg.TokenSignKey,
		grantDuration:  cfg.GrantDuration,
		usedCodes:      make(map[string]time.Time),
		logger:         logger,
	}
}

// Status never reports Verified: verification belongs to the client process.
func (s *totpService) Status(ctx context.Context) (models.TOTPStatus, error) {
	settings, err := s.totpRepository.GetTOTPSettings(ctx)
	if errors.Is(err, store.ErrTOTPSettingsNotFound) {
		return models.TOTPStatus{Enabled: false, SetupRequired: true}, nil
	}
	if err != nil {
		return models.TOTPStatus{}, fmt.Errorf("totp status: %w", err)
	}

	return models.TOTPStatus{Enabled: settings.Enabled, SetupRequired: !settings.Enabled}, nil
}

// Setup issues a new secret and stores it as pending. A pending secret from
// an earlier setup is replaced.
func (s *totpService) Setup(ctx context.Context) (models.TOTPSetup, error) {
	settings, err := s.totpRepository.GetTOTPSettings(ctx)
	switch {
	case err == nil && settings.Enabled:
		return models.TOTPSetup{}, ErrTOTPAlreadyEnabled
	case err != nil && !errors.Is(err, store.ErrTOTPSettingsNotFound):
		return models.TOTPSetup{}, fmt.Errorf("totp setup: %w", err)
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer,
		AccountName: s.account,
	})
	if err != nil {
		return models.TOTPSetup{}, fmt.Errorf("generate totp secret: %w", err)
	}

	now := s.clock.Now().UTC()
	pending := models.TOTPSettings{Secret: key.Secret(), Enabled: false, CreatedAt: now, UpdatedAt: now}
	if err = s.totpRepository.SaveTOTPSettings(ctx, pending); err != nil {
		return models.TOTPSetup{}, fmt.Errorf("save pending totp secret: %w", err)
	}

	s.logger.Info().Msg("totp setup issued")
	return models.TOTPSetup{URI: key.String(), Secret: key.Secret()}, nil
}

// Verify confirms a pending setup with its first code and enables TOTP.
func (s *totpService) Verify(ctx context.Context, code string) (models.TOTPResult, error) {
	settings, err := s.totpRepository.GetTOTPSettings(ctx)
	if errors.Is(err, store.ErrTOTPSettingsNotFound) {
		return models.TOTPResult{}, ErrNoPendingSetup
	}
	if err != nil {
		return models.TOTPResult{}, fmt.Errorf("totp verify: %w", err)
	}
	if settings.Enabled {
		return models.TOTPResult{}, ErrTOTPAlreadyEnabled
	}

	if err = s.checkCode(settings.Secret, code); err != nil {
		return models.TOTPResult{}, err
	}

	settings.Enabled = true
	settings.UpdatedAt = s.clock.Now().UTC()
	if err = s.totpRepository.SaveTOTPSettings(ctx, settings); err != nil {
		return models.TOTPResult{}, fmt.Errorf("enable totp: %w", err)
	}

	grant, err := s.issueGrant()
	if err != nil {
		return models.TOTPResult{}, err
	}

	s.logger.Info().Msg("totp enabled")
	return models.TOTPResult{OK: true, Enabled: true, Verified: true, Grant: grant}, nil
}

func (s *totpService) Validate(ctx context.Context, code string) (models.TOTPResult, error) {
	settings, err := s.enabledSettings(ctx)
	if err != nil {
		return models.TOTPResult{}, err
	}

	if err = s.checkCode(settings.Secret, code); err != nil {
		return models.TOTPResult{}, err
	}

	grant, err := s.issueGrant()
	if err != nil {
		return models.TOTPResult{}, err
	}

	return models.TOTPResult{OK: true, Enabled: true, Verified: true, Grant: grant}, nil
}

// Disable removes the secret after checking a current code.
func (s *totpService) Disable(ctx context.Context, code string) (models.TOTPResult, error) {
	settings, err := s.enabledSettings(ctx)
	if err != nil {
		return models.TOTPResult{}, err
	}

	if err = s.checkCode(settings.Secret, code); err != nil {
		return models.TOTPResult{}, err
	}

	if err = s.totpRepository.DeleteTOTPSettings(ctx); err != nil {
		return models.TOTPResult{}, fmt.Errorf("disable totp: %w", err)
	}

	s.logger.Info().Msg("totp disabled")
	return models.TOTPResult{OK: true, Enabled: false, Verified: false, Disabled: true}, nil
}

func (s *totpService) GrantRequired(ctx context.Context) (bool, error) {
	settings, err := s.totpRepository.GetTOTPSettings(ctx)
	if errors.Is(err, store.ErrTOTPSettingsNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("totp grant required: %w", err)
	}
	return settings.Enabled, nil
}

func (s *totpService) ValidateGrant(token string) error {
	if token == "" {
		return ErrInvalidGrant
	}
	if err := utils.ValidateGrantToken(token, s.signKey, s.tokenIssuer, s.clock.Now()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGrant, err)
	}
	return nil
}

func (s *totpService) SweepReplayCache() int {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for key, expiresAt := range s.usedCodes {
		if !now.Before(expiresAt) {
			delete(s.usedCodes, key)
			evicted++
		}
	}
	return evicted
}

func (s *totpService) enabledSettings(ctx context.Context) (models.TOTPSettings, error) {
	settings, err := s.totpRepository.GetTOTPSettings(ctx)
	if errors.Is(err, store.ErrTOTPSettingsNotFound) {
		return models.TOTPSettings{}, ErrTOTPNotEnabled
	}
	if err != nil {
		return models.TOTPSettings{}, fmt.Errorf("load totp settings: %w", err)
	}
	if !settings.Enabled {
		return models.TOTPSettings{}, ErrTOTPNotEnabled
	}
	return settings, nil
}

// checkCode validates code against secret and spends it. A code that was
// already accepted within ReplayWindow is rejected like a wrong one.
func (s *totpService) checkCode(secret, code string) error {
	code = strings.TrimSpace(code)
	now := s.clock.Now()

	ok, err := totp.ValidateCustom(code, secret, now.UTC(), totpValidateOpts)
	if err != nil || !ok {
		return ErrInvalidTOTPCode
	}

	key := utils.HashString(secret+":"+code, s.signKey)

	s.mu.Lock()
	defer s.mu.Unlock()

	if expiresAt, used := s.usedCodes[key]; used && now.Before(expiresAt) {
		s.logger.Warn().Msg("totp code replay rejected")
		return ErrInvalidTOTPCode
	}
	s.usedCodes[key] = now.Add(ReplayWindow)
	return nil
}

func (s *totpService) issueGrant() (string, error) {
	grant, err := utils.GenerateGrantToken(s.tokenIssuer, s.clock.Now(), s.grantDuration, s.signKey)
	if err != nil {
		return "", fmt.Errorf("issue totp grant: %w", err)
	}
	return grant, nil
}
