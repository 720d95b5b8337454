package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"leet_tracker/internal/domain/model"
)

func TestAnalysisKey(t *testing.T) {
	a := AnalysisKey("return nums")
	assert.True(t, strings.HasPrefix(a, "analysis:"))
	assert.Len(t, a, len("analysis:")+64)
	assert.Equal(t, a, AnalysisKey("return nums"))
	assert.NotEqual(t, a, AnalysisKey("return nums;"))
}

func TestNoopAlwaysMisses(t *testing.T) {
	var c AnalysisCache = Noop{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", &model.CodeAnalysis{TimeComplexity: "O(n)"}))
	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.NoError(t, c.Close())
}

func TestConnectRedisUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := ConnectRedis(ctx, "127.0.0.1:1", "", 0, time.Minute, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping redis 127.0.0.1:1")
}
