package aggregate

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_MergesByName(t *testing.T) {
	t.Parallel()

	results, err := Run(context.Background(), map[string]Query{
		"count": func(_ context.Context) (interface{}, error) {
			return 42, nil
		},
		"names": func(_ context.Context) (interface{}, error) {
			return []string{"a", "b"}, nil
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 42, results["count"])
	assert.Equal(t, []string{"a", "b"}, results["names"])
}

func TestRun_FailureDiscardsPartialResults(t *testing.T) {
	t.Parallel()

	boom := errors.New("store unavailable")

	results, err := Run(context.Background(), map[string]Query{
		"ok": func(_ context.Context) (interface{}, error) {
			return 1, nil
		},
		"bad": func(_ context.Context) (interface{}, error) {
			return nil, boom
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, results)
}

func TestRun_CancelsSiblingsOnFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	failed := make(chan struct{})

	_, err := Run(context.Background(), map[string]Query{
		"fails": func(_ context.Context) (interface{}, error) {
			close(failed)
			return nil, boom
		},
		"waits": func(ctx context.Context) (interface{}, error) {
			<-failed
			<-ctx.Done()
			return nil, ctx.Err()
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestRun_EmptySet(t *testing.T) {
	t.Parallel()

	results, err := Run(context.Background(), map[string]Query{})
	require.NoError(t, err)
	assert.Empty(t, results)
}
