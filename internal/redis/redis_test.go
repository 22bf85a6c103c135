package redis

import (
	"context"
	"net"
	"testing"
	"time"

	"character-search/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client, err := NewRedisClient(srv.Addr(), "", 0, time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, srv
}

func TestStateRoundTrip(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	state, err := client.GetState(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, state)

	require.NoError(t, client.SaveState(ctx, 42, model.SearchState{Query: "Rick", Seq: 3}))

	state, err = client.GetState(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, &model.SearchState{Query: "Rick", Seq: 3}, state)

	require.NoError(t, client.DeleteState(ctx, 42))
	state, err = client.GetState(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestStateExpires(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.SaveState(ctx, 7, model.SearchState{Query: "Morty"}))
	srv.FastForward(2 * time.Minute)

	state, err := client.GetState(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestNextSeqIsMonotonicPerChat(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	for want := uint64(1); want <= 3; want++ {
		got, err := client.NextSeq(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	got, err := client.NextSeq(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got)
}

func TestNewRedisClientUnreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	_, err = NewRedisClient(addr, "", 0, time.Minute)
	assert.Error(t, err)
}

func TestLatestSeqFollowsNextSeq(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	latest, err := client.LatestSeq(ctx, 9)
	require.NoError(t, err)
	assert.Zero(t, latest)

	_, err = client.NextSeq(ctx, 9)
	require.NoError(t, err)
	issued, err := client.NextSeq(ctx, 9)
	require.NoError(t, err)
	require.NoError(t, client.SaveState(ctx, 9, model.SearchState{Query: "Rick", Seq: 1}))

	latest, err = client.LatestSeq(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, issued, latest)

	require.NoError(t, client.DeleteState(ctx, 9))
	latest, err = client.LatestSeq(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, issued, latest)
}
