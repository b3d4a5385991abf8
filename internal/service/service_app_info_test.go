package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/menu-predictor/internal/logger"
	"github.com/MKhiriev/menu-predictor/internal/mock"
	"github.com/MKhiriev/menu-predictor/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNewAppInfoService_EmptyVersion_ReturnsError(t *testing.T) {
	svc, err := NewAppInfoService(models.NewAppBuildInfo("", "", ""), nil, logger.Nop())

	assert.Nil(t, svc)
	assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
}

func TestAppInfoService_GetAppVersion(t *testing.T) {
	svc, err := NewAppInfoService(models.NewAppBuildInfo("3.1.4", "", ""), nil, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "3.1.4", svc.GetAppVersion(context.Background()))
}

func TestAppInfoService_Health(t *testing.T) {
	build := models.NewAppBuildInfo("1.0.0", "2026-03-01", "abc123")

	tests := []struct {
		name     string
		pingErr  error
		wantErr  error
		expected models.Health
	}{
		{
			name: "database reachable",
			expected: models.Health{
				Status: "ok", Database: "ok",
				Version: "1.0.0", Date: "2026-03-01", Commit: "abc123",
			},
		},
		{
			name:    "database down",
			pingErr: errors.New("connection refused"),
			wantErr: ErrDatabaseUnavailable,
			expected: models.Health{
				Status: "unavailable", Database: "unavailable",
				Version: "1.0.0", Date: "2026-03-01", Commit: "abc123",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			pinger := mock.NewMockPinger(ctrl)
			pinger.EXPECT().Ping(gomock.Any()).Return(tt.pingErr)

			svc, err := NewAppInfoService(build, pinger, logger.Nop())
			require.NoError(t, err)

			report, err := svc.Health(context.Background())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, report)
		})
	}
}

func TestAppInfoService_Health_NoDatabase(t *testing.T) {
	svc, err := NewAppInfoService(models.NewAppBuildInfo("1.0.0", "", ""), nil, logger.Nop())
	require.NoError(t, err)

	report, err := svc.Health(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ok", report.Status)
}
