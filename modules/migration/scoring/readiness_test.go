package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStage_RoundTrip(t *testing.T) {
	for _, stage := range Stages() {
		got, ok := StageForPercent(stage.Percent())
		require.True(t, ok)
		require.Equal(t, stage, got, stage.String())
	}
}

func TestStageForPercent_Bands(t *testing.T) {
	cases := []struct {
		percent float64
		stage   Stage
	}{
		{10, StageOrderlist},
		{19.9, StageOrderlist},
		{20, StageInventory},
		{55, StageBuild},
		{84.9, StageAcceptance},
		{85, StageDeployment},
		{99, StageDeployment},
		{100, StageDecharge},
		{100.1, StageDecharge},
	}
	for _, c := range cases {
		got, ok := StageForPercent(c.percent)
		require.True(t, ok)
		require.Equal(t, c.stage, got)
	}

	_, ok := StageForPercent(9.9)
	require.False(t, ok)
	_, ok = StageForPercent(0)
	require.False(t, ok)
}

func TestParseStage(t *testing.T) {
	s, ok := ParseStage("orderlist to dep")
	require.True(t, ok)
	require.Equal(t, StageOrderlist, s)

	s, ok = ParseStage(" DECHARGE ")
	require.True(t, ok)
	require.Equal(t, StageDecharge, s)

	_, ok = ParseStage("")
	require.False(t, ok)
	_, ok = ParseStage("unknown stage")
	require.False(t, ok)
}

func TestStageOrdering(t *testing.T) {
	stages := Stages()
	require.Len(t, stages, 9)
	for i := 1; i < len(stages); i++ {
		require.Greater(t, stages[i].Percent(), stages[i-1].Percent())
	}
	require.Equal(t, 10.0, stages[0].Percent())
	require.Equal(t, 100.0, stages[len(stages)-1].Percent())
}
