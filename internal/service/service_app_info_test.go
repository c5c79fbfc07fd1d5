package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-vault-gate/internal/logger"
	"github.com/MKhiriev/go-vault-gate/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppInfoService_Success(t *testing.T) {
	svc, err := NewAppInfoService(models.NewAppBuildInfo("1.0.0", "", ""), logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, svc)
}

func TestNewAppInfoService_EmptyVersion_ReturnsError(t *testing.T) {
	svc, err := NewAppInfoService(models.NewAppBuildInfo("", "2026-03-01", "abc"), logger.Nop())

	assert.Nil(t, svc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVersionIsNotSpecified))
}

func TestGetAppVersion_ReturnsBuildInfo(t *testing.T) {
	svc, err := NewAppInfoService(models.NewAppBuildInfo("3.1.4", "2026-03-01", "abc123"), logger.Nop())
	require.NoError(t, err)

	got := svc.GetAppVersion(context.Background())

	assert.Equal(t, models.VersionResponse{Version: "3.1.4", Date: "2026-03-01", Commit: "abc123"}, got)
}

func TestGetAppVersion_IsStable(t *testing.T) {
	svc, err := NewAppInfoService(models.NewAppBuildInfo("v2.0.0", "", ""), logger.Nop())
	require.NoError(t, err)

	first := svc.GetAppVersion(context.Background())
	second := svc.GetAppVersion(context.Background())

	assert.Equal(t, first, second)
	assert.Equal(t, "N/A", first.Commit)
}
