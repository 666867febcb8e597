package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/noah-isme/curriculum-scheduler/pkg/errors"
)

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, "scheduler:", nil)
	ctx := context.Background()

	assert.False(t, repo.Enabled())
	assert.Equal(t, "scheduler:result:abc", repo.Key("result:abc"))

	var dest map[string]string
	assert.ErrorIs(t, repo.Get(ctx, "result:abc", &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(ctx, "result:abc", map[string]string{"a": "b"}, time.Minute))
	assert.NoError(t, repo.Close())
}
