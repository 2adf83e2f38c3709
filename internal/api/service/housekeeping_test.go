package service

import (
	"context"
	"testing"
	"time"

	"github.com/matrixmedia/matrix/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingClearsExpiredCodes(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	u := env.signUp(t, "alice", "alice@example.com")
	env.notifier.Wait()

	require.NoError(t, env.reset.RequestOTP(ctx, "alice@example.com"))

	hk := NewHousekeepingService(env.store, slogx.Discard(), time.Hour)
	hk.Now = env.clock.Now

	require.Zero(t, hk.Cleanup(ctx))

	env.clock.Advance(DefaultOTPTTL)
	require.EqualValues(t, 1, hk.Cleanup(ctx))

	stored, err := env.store.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Nil(t, stored.OTP)
}

func TestHousekeepingStartStop(t *testing.T) {
	env := newEnv(t)

	hk := NewHousekeepingService(env.store, slogx.Discard(), 0)
	require.Equal(t, time.Hour, hk.Interval)

	hk.Start()
	hk.Stop()
}
