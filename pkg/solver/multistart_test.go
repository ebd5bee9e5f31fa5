package solver

import (
	"errors"
	"testing"

	"github.com/lintang-b-s/ucarpp/pkg"
	"github.com/lintang-b-s/ucarpp/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSolveMultiStartPicksBestSeed(t *testing.T) {
	g := grid(t)
	params := testParams(100, 12)

	res, err := SolveMultiStart(g, 0, 2, gridLimits, params, zap.NewNop(), pkg.STRATEGY_VND, 0, 4, 2)
	require.NoError(t, err)
	require.NotNil(t, res.Best)
	assert.NotEmpty(t, res.RunID)
	requireValid(t, res.Best)

	for i := uint64(0); i < 4; i++ {
		s := newTestSolver(t, g, 2, gridLimits, testParams(params.Seed+i, 12))
		single, err := s.Solve(pkg.STRATEGY_VND, 0)
		require.NoError(t, err)

		assert.False(t, single.BetterThan(res.Best), "seed %d beats the multi-start result", params.Seed+i)
		if params.Seed+i == res.Seed {
			assert.True(t, single.Equal(res.Best))
		}
	}
}

func TestSolveMultiStartRejectsBadInput(t *testing.T) {
	g := grid(t)

	testCases := []struct {
		name     string
		strategy string
		starts   int
	}{
		{name: "no starts", strategy: pkg.STRATEGY_VNS, starts: 0},
		{name: "unknown strategy", strategy: "SA", starts: 2},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SolveMultiStart(g, 0, 2, gridLimits, testParams(1, 4), nil, tt.strategy, 0, tt.starts, 1)
			require.Error(t, err)
			assert.True(t, errors.Is(err, util.ErrBadParamInput))
		})
	}

	t.Run("failing run keeps its code", func(t *testing.T) {
		_, err := SolveMultiStart(g, 0, 0, gridLimits, testParams(1, 4), nil, pkg.STRATEGY_VNS, 0, 2, 2)
		require.Error(t, err)
		assert.True(t, errors.Is(err, util.ErrBadParamInput))
	})
}
