package overrides

import (
	"context"
	"errors"
	"testing"

	"ratectl/internal/bridge/bridgetest"
	"ratectl/internal/script"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigFile = "/data/adb/modules/m/config/mode.txt"

func newTestStore(host *bridgetest.FakeHost) *Store {
	client := script.NewClient(bridgetest.NewBridge(host), "/m/web_handler.sh")
	return NewStore(client, testConfigFile)
}

func TestStore_Load(t *testing.T) {
	host := bridgetest.NewFakeHost().On("cat", "3\npkg.a=5\npkg.b=7\n")
	s := newTestStore(host)

	assert.Equal(t, NoOverride, s.Global())
	require.NoError(t, s.Load(context.Background()))

	assert.Equal(t, 3, s.Global())
	assert.Equal(t, map[string]int{"pkg.a": 5, "pkg.b": 7}, s.Apps())
	id, ok := s.AppOverride("pkg.b")
	assert.True(t, ok)
	assert.Equal(t, 7, id)
	assert.Equal(t, 1, host.CallsMatching(`cat "`+testConfigFile+`"`))
}

func TestStore_LoadReplacesWholesale(t *testing.T) {
	host := bridgetest.NewFakeHost().On("cat", "3\npkg.a=5", "4\npkg.c=1")
	s := newTestStore(host)

	require.NoError(t, s.Load(context.Background()))
	require.NoError(t, s.Load(context.Background()))

	assert.Equal(t, 4, s.Global())
	assert.Equal(t, map[string]int{"pkg.c": 1}, s.Apps())
}

func TestStore_LoadCancelled(t *testing.T) {
	host := bridgetest.NewFakeHost().On("cat", "3")
	s := newTestStore(host)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Load(ctx), context.Canceled)
	assert.Equal(t, NoOverride, s.Global())
}

func TestStore_SaveGlobal(t *testing.T) {
	t.Run("no mode selected", func(t *testing.T) {
		host := bridgetest.NewFakeHost()
		s := newTestStore(host)

		_, err := s.SaveGlobal(context.Background(), NoOverride)
		assert.ErrorIs(t, err, ErrNoModeSelected)
		assert.Empty(t, host.Calls())
	})

	t.Run("success runs refresh hook", func(t *testing.T) {
		host := bridgetest.NewFakeHost().On("set_config", "Success")
		s := newTestStore(host)
		refreshed := 0
		s.SetRefreshHook(func(context.Context) error {
			refreshed++
			return nil
		})

		resp, err := s.SaveGlobal(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, "Success", resp)
		assert.Equal(t, 1, refreshed)
		assert.Equal(t, 1, host.CallsMatching(`set_config "5"`))
	})

	t.Run("success without hook reloads", func(t *testing.T) {
		host := bridgetest.NewFakeHost().
			On("set_config", "Success").
			On("cat", "5")
		s := newTestStore(host)

		_, err := s.SaveGlobal(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, 5, s.Global())
	})

	t.Run("failure keeps raw response", func(t *testing.T) {
		host := bridgetest.NewFakeHost().On("set_config", "Error: read-only")
		s := newTestStore(host)
		s.SetRefreshHook(func(context.Context) error {
			t.Fatal("refresh must not run on failure")
			return nil
		})

		resp, err := s.SaveGlobal(context.Background(), 5)
		var fe *script.FailureError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "Error: read-only", fe.Response)
		assert.Equal(t, "Error: read-only", resp)
	})

	t.Run("refresh error is wrapped", func(t *testing.T) {
		host := bridgetest.NewFakeHost().On("set_config", "Success")
		s := newTestStore(host)
		boom := errors.New("boom")
		s.SetRefreshHook(func(context.Context) error { return boom })

		_, err := s.SaveGlobal(context.Background(), 5)
		assert.ErrorIs(t, err, boom)
	})
}

func TestStore_SaveAppOverride(t *testing.T) {
	host := bridgetest.NewFakeHost().On("set_app_config", "Success")
	s := newTestStore(host)

	_, err := s.SaveAppOverride(context.Background(), "com.a", 5)
	require.NoError(t, err)
	id, ok := s.AppOverride("com.a")
	require.True(t, ok)
	assert.Equal(t, 5, id)

	_, err = s.SaveAppOverride(context.Background(), "com.a", NoOverride)
	require.NoError(t, err)
	_, ok = s.AppOverride("com.a")
	assert.False(t, ok)

	assert.Equal(t, 1, host.CallsMatching(`set_app_config "com.a" "5"`))
	assert.Equal(t, 1, host.CallsMatching(`set_app_config "com.a" "-1"`))
}

func TestStore_SaveAppOverrideFailureLeavesState(t *testing.T) {
	host := bridgetest.NewFakeHost().
		On("cat", "1\ncom.a=2").
		On("set_app_config", "")
	s := newTestStore(host)
	require.NoError(t, s.Load(context.Background()))

	_, err := s.SaveAppOverride(context.Background(), "com.a", 9)
	assert.True(t, script.IsFailure(err))
	id, _ := s.AppOverride("com.a")
	assert.Equal(t, 2, id)
}

func TestStore_AppsIsCopy(t *testing.T) {
	host := bridgetest.NewFakeHost().On("cat", "1\ncom.a=2")
	s := newTestStore(host)
	require.NoError(t, s.Load(context.Background()))

	apps := s.Apps()
	apps["com.a"] = 99
	id, _ := s.AppOverride("com.a")
	assert.Equal(t, 2, id)
}
