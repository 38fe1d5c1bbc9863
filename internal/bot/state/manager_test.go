package state

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func exerciseStateManager(t *testing.T, m StateManager) {
	t.Helper()

	assert.Equal(t, None, m.GetUserState(42))

	m.SetUserState(42, WaitingForServings)
	m.SetTempData(42, KeyRecipeID, "7")
	assert.Equal(t, WaitingForServings, m.GetUserState(42))
	assert.Equal(t, None, m.GetUserState(43))

	v, ok := m.GetTempData(42, KeyRecipeID)
	assert.True(t, ok)
	assert.Equal(t, "7", v)

	_, ok = m.GetTempData(42, "missing")
	assert.False(t, ok)

	m.ClearTempData(42)
	_, ok = m.GetTempData(42, KeyRecipeID)
	assert.False(t, ok)

	m.ClearUserState(42)
	assert.Equal(t, None, m.GetUserState(42))
}

func TestManager(t *testing.T) {
	exerciseStateManager(t, NewManager())
}

func TestRedisManager(t *testing.T) {
	mr := miniredis.RunT(t)
	m := NewRedisManager(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer m.Close()

	exerciseStateManager(t, m)

	m.SetUserState(1, WaitingForRecipeURL)
	mr.FastForward(stateTTL + time.Minute)
	assert.Equal(t, None, m.GetUserState(1))
}

func TestRedisManagerFallsBackWhenDown(t *testing.T) {
	mr := miniredis.RunT(t)
	m := NewRedisManager(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer m.Close()
	mr.Close()

	m.SetUserState(1, WaitingForRecipeURL)
	assert.Equal(t, None, m.GetUserState(1))
}
