package store

import (
	"testing"

	"taskbench/internal/task"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestSeedState(t *testing.T) {
	s := New()
	all := s.List()
	require.Len(t, all, 3)
	for i, tk := range all {
		assert.Equal(t, i+1, tk.ID)
	}
	assert.True(t, all[2].Completed)
}

func TestCreateAssignsMonotonicIDs(t *testing.T) {
	s := New()
	created, err := s.Create(task.Payload{Title: strPtr("x")})
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID)
	assert.Equal(t, "x", created.Title)
	assert.Equal(t, task.DefaultDescription, created.Description)
	assert.False(t, created.Completed)

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	next, err := s.Create(task.Payload{Title: strPtr("y"), Description: strPtr(" trimmed "), Completed: boolPtr(true)})
	require.NoError(t, err)
	assert.Greater(t, next.ID, created.ID)
	assert.Equal(t, "trimmed", next.Description)
	assert.True(t, next.Completed)
}

func TestCreateValidation(t *testing.T) {
	s := New()

	_, err := s.Create(task.Payload{})
	var verr *task.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)

	_, err = s.Create(task.Payload{Title: strPtr("   ")})
	require.ErrorAs(t, err, &verr)

	// Failed creates must not burn ids
	created, err := s.Create(task.Payload{Title: strPtr("ok")})
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID)
}

func TestDeleteNeverReusesIDs(t *testing.T) {
	s := New()
	removed, err := s.Delete(2)
	require.NoError(t, err)
	assert.Equal(t, 2, removed.ID)

	_, err = s.Get(2)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, s.List(), 2)

	created, err := s.Create(task.Payload{Title: strPtr("new")})
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID)

	_, err = s.Delete(99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePartialFields(t *testing.T) {
	s := New()
	before, err := s.Get(2)
	require.NoError(t, err)

	after, err := s.Update(2, task.Payload{Completed: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, after.Completed)
	assert.Equal(t, before.Title, after.Title)
	assert.Equal(t, before.Description, after.Description)
	assert.Equal(t, before.ID, after.ID)
}

func TestUpdateNoFields(t *testing.T) {
	s := New()
	before, _ := s.Get(1)

	_, err := s.Update(1, task.Payload{})
	assert.ErrorIs(t, err, ErrNoFields)

	unchanged, _ := s.Get(1)
	assert.Equal(t, before, unchanged)
}

func TestUpdateNoPartialApplication(t *testing.T) {
	s := New()
	before, _ := s.Get(1)

	// completed is valid, title is not: nothing may change
	_, err := s.Update(1, task.Payload{Title: strPtr(""), Completed: boolPtr(true)})
	var verr *task.ValidationError
	require.ErrorAs(t, err, &verr)

	unchanged, _ := s.Get(1)
	assert.Equal(t, before, unchanged)
}

func TestUpdateNotFound(t *testing.T) {
	s := New()
	_, err := s.Update(999, task.Payload{Completed: boolPtr(true)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResetRestoresSeedState(t *testing.T) {
	s := New()
	_, err := s.Create(task.Payload{Title: strPtr("extra")})
	require.NoError(t, err)
	_, err = s.Delete(1)
	require.NoError(t, err)
	_, err = s.Update(2, task.Payload{Completed: boolPtr(true)})
	require.NoError(t, err)

	s.Reset()
	assert.Equal(t, New().List(), s.List())

	created, err := s.Create(task.Payload{Title: strPtr("first after reset")})
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID)
}

func TestHead(t *testing.T) {
	s := New()
	assert.Len(t, s.Head(2), 2)
	assert.Len(t, s.Head(10), 3)
	assert.Empty(t, s.Head(0))
}

func TestGenerationBumpsOnMutation(t *testing.T) {
	s := New()
	g0 := s.Generation()
	_, err := s.Create(task.Payload{Title: strPtr("x")})
	require.NoError(t, err)
	g1 := s.Generation()
	assert.Greater(t, g1, g0)

	s.List() // reads do not bump
	assert.Equal(t, g1, s.Generation())

	s.Reset()
	assert.Greater(t, s.Generation(), g1)
}
