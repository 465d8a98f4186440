package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/migscope/pkg/configuration"
)

func testConfiguration(t *testing.T) *configuration.Configuration {
	t.Helper()
	return &configuration.Configuration{Environments: "main,staging,archive"}
}

func TestEnvironmentService_Current(t *testing.T) {
	svc := NewEnvironmentService(testConfiguration(t), nil)
	require.Equal(t, "main", svc.Current(), "first configured environment is the default")
	require.Equal(t, []string{"main", "staging", "archive"}, svc.Names())
}

func TestEnvironmentService_SwitchUnknown(t *testing.T) {
	svc := NewEnvironmentService(testConfiguration(t), nil)

	err := svc.Switch(context.Background(), "production")
	require.ErrorIs(t, err, ErrUnknownEnvironment)
	require.Equal(t, "main", svc.Current(), "failed switch leaves the environment unchanged")
}

func TestEnvironmentService_SwitchToCurrentIsNoop(t *testing.T) {
	svc := NewEnvironmentService(testConfiguration(t), nil)
	require.NoError(t, svc.Switch(context.Background(), "main"))
	require.Equal(t, "main", svc.Current())
}
