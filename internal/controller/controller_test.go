package controller

import (
	"bytes"
	"fmt"
	"io/fs"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/clientbook/internal/jsonl"
	"github.com/mesh-intelligence/clientbook/internal/sqlite"
	"github.com/mesh-intelligence/clientbook/pkg/types"
)

// setupController returns a controller over a fresh in-memory store and the
// buffer its JSON logs are written to.
func setupController(t *testing.T) (*ClientController, *bytes.Buffer) {
	t.Helper()
	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, Path: types.MemoryPath}))
	t.Cleanup(func() { b.Detach() })

	table, err := b.Clients()
	require.NoError(t, err)

	var logs bytes.Buffer
	return New(table, zerolog.New(&logs).Level(zerolog.DebugLevel)), &logs
}

func formNamed(name string) ClientForm {
	f := validForm()
	f.Name = name
	return f
}

func ids(clients []*types.Client) []int64 {
	out := make([]int64, len(clients))
	for i, c := range clients {
		out[i] = c.ID
	}
	return out
}

func TestController_CreateThenGet(t *testing.T) {
	ctl, logs := setupController(t)

	id, err := ctl.Create(validForm())
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	want, err := Validate(validForm())
	require.NoError(t, err)
	want.ID = id

	got, err := ctl.Get(id)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Contains(t, logs.String(), `"client created"`)
}

func TestController_CreateRejectsInvalidForm(t *testing.T) {
	ctl, logs := setupController(t)

	form := validForm()
	form.PostalCode = "1234"
	form.HairColor = "green"

	_, err := ctl.Create(form)
	assert.ErrorIs(t, err, types.ErrValidation)
	assert.Equal(t, []string{"postal_code", "hair_color"}, fieldsOf(t, err))

	n, err := ctl.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, n, "invalid form must not reach the store")
	assert.Contains(t, logs.String(), `"level":"warn"`)
}

func TestController_ThreeInsertsThenDeleteMiddle(t *testing.T) {
	ctl, _ := setupController(t)

	for i, name := range []string{"First", "Second", "Third"} {
		id, err := ctl.Create(formNamed(name))
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), id)
	}

	all, err := ctl.List()
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids(all))

	require.NoError(t, ctl.Delete(2))
	all, err = ctl.List()
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids(all))

	next, err := ctl.NextID()
	require.NoError(t, err)
	assert.Equal(t, int64(4), next)

	id, err := ctl.Create(formNamed("Fourth"))
	require.NoError(t, err)
	assert.Equal(t, int64(4), id, "deleted id 2 must not be reused")
}

func TestController_Update(t *testing.T) {
	ctl, _ := setupController(t)
	id, err := ctl.Create(validForm())
	require.NoError(t, err)

	form := validForm()
	form.Name = "Alice Dupont"
	form.AvailableCredit = "0"
	form.IsGoodClient = false
	form.HairColor = "Bald"
	require.NoError(t, ctl.Update(id, form))

	got, err := ctl.Get(id)
	require.NoError(t, err)
	want, err := Validate(form)
	require.NoError(t, err)
	want.ID = id
	assert.Equal(t, want, got)
}

func TestController_UpdateErrors(t *testing.T) {
	ctl, _ := setupController(t)

	assert.ErrorIs(t, ctl.Update(5, validForm()), types.ErrNotFound)

	id, err := ctl.Create(validForm())
	require.NoError(t, err)

	bad := validForm()
	bad.BirthDate = "2023-02-30"
	assert.ErrorIs(t, ctl.Update(id, bad), types.ErrValidation)

	got, err := ctl.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "1988-04-17", got.BirthDate, "rejected update must leave the row untouched")
}

func TestController_DeleteTwice(t *testing.T) {
	ctl, _ := setupController(t)
	id, err := ctl.Create(validForm())
	require.NoError(t, err)

	require.NoError(t, ctl.Delete(id))
	_, err = ctl.Get(id)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.ErrorIs(t, ctl.Delete(id), types.ErrNotFound)
}

func TestController_SearchAndDeleteMany(t *testing.T) {
	ctl, _ := setupController(t)
	for _, name := range []string{"Martin Dupont", "Claire Martin", "Bob Leroy"} {
		_, err := ctl.Create(formNamed(name))
		require.NoError(t, err)
	}

	found, err := ctl.Search("martin")
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1}, ids(found))

	require.NoError(t, ctl.DeleteMany(ids(found)))
	n, err := ctl.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestController_StoreFailureIsNotUserError(t *testing.T) {
	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, Path: types.MemoryPath}))
	table, err := b.Clients()
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	var logs bytes.Buffer
	ctl := New(table, zerolog.New(&logs))

	_, err = ctl.List()
	assert.ErrorIs(t, err, types.ErrDetached)
	assert.False(t, IsUserError(err))
	assert.Contains(t, logs.String(), `"level":"error"`)
}

func TestIsUserError(t *testing.T) {
	assert.True(t, IsUserError(&types.ValidationError{Fields: []types.FieldError{{Field: "name"}}}))
	assert.True(t, IsUserError(types.ErrNotFound))
	assert.True(t, IsUserError(types.ErrConstraint))
	assert.True(t, IsUserError(fmt.Errorf("import: %w", jsonl.ErrMalformedLine)))
	assert.True(t, IsUserError(fmt.Errorf("opening x.jsonl: %w", fs.ErrNotExist)))
	assert.False(t, IsUserError(types.ErrConnection))
	assert.False(t, IsUserError(types.ErrDetached))
	assert.False(t, IsUserError(fmt.Errorf("%w: open db: %w", types.ErrConnection, fs.ErrNotExist)))
}
