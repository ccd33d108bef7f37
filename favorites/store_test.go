package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"recipebox/recipe"
	"recipebox/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	bowl  = recipe.Summary{ID: 1, Title: "Chicken Rice Bowl", Image: "https://img/1.jpg"}
	toast = recipe.Summary{ID: 2, Title: "Toast", Image: "https://img/2.jpg"}
)

func persisted(t *testing.T, state *storage.TestState) []recipe.Summary {
	t.Helper()
	var out []recipe.Summary
	require.NoError(t, json.Unmarshal(state.Data(), &out))
	return out
}

func TestStore_Load(t *testing.T) {
	tests := []struct {
		name  string
		state *storage.TestState
		want  []recipe.Summary
	}{
		{
			name:  "nothing saved yet",
			state: storage.NewEmptyTestState(),
			want:  []recipe.Summary{},
		},
		{
			name:  "unreadable state",
			state: storage.NewTestStateWithError(),
			want:  []recipe.Summary{},
		},
		{
			name:  "corrupted blob",
			state: storage.NewTestState([]byte("invalid json")),
			want:  []recipe.Summary{},
		},
		{
			name:  "empty blob",
			state: storage.NewTestState([]byte{}),
			want:  []recipe.Summary{},
		},
		{
			name:  "stored list keeps its order",
			state: storage.NewTestState([]byte(`[{"id":2,"title":"Toast","image":"https://img/2.jpg"},{"id":1,"title":"Chicken Rice Bowl","image":"https://img/1.jpg"}]`)),
			want:  []recipe.Summary{toast, bowl},
		},
		{
			name:  "duplicate ids collapse to the first",
			state: storage.NewTestState([]byte(`[{"id":1,"title":"Chicken Rice Bowl","image":"https://img/1.jpg"},{"id":1,"title":"Stale"}]`)),
			want:  []recipe.Summary{bowl},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := Open(context.Background(), tt.state)
			assert.Equal(t, tt.want, store.List())
			assert.Equal(t, tt.want, store.Load(context.Background()))
		})
	}
}

func TestStore_AddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	state := storage.NewEmptyTestState()
	store := Open(ctx, state)

	require.NoError(t, store.Add(ctx, bowl))
	once := store.List()

	require.NoError(t, store.Add(ctx, bowl))
	assert.Equal(t, once, store.List())
	assert.Equal(t, []recipe.Summary{bowl}, persisted(t, state))
	assert.Equal(t, 1, state.Saves(), "a duplicate add should not rewrite the list")
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	state := storage.NewEmptyTestState()
	store := Open(ctx, state)

	require.NoError(t, store.Add(ctx, bowl))
	require.NoError(t, store.Add(ctx, toast))

	assert.Equal(t, []recipe.Summary{bowl, toast}, store.Load(ctx))

	reopened := Open(ctx, state)
	assert.Equal(t, []recipe.Summary{bowl, toast}, reopened.List())
}

func TestStore_Remove(t *testing.T) {
	ctx := context.Background()
	state := storage.NewEmptyTestState()
	store := Open(ctx, state)
	require.NoError(t, store.Add(ctx, bowl))
	require.NoError(t, store.Add(ctx, toast))

	require.NoError(t, store.Remove(ctx, bowl.ID))
	assert.False(t, store.Contains(bowl.ID))
	assert.Equal(t, []recipe.Summary{toast}, store.Load(ctx))

	saves := state.Saves()
	require.NoError(t, store.Remove(ctx, 999))
	assert.Equal(t, []recipe.Summary{toast}, store.List())
	assert.Equal(t, saves, state.Saves(), "removing an absent id should not write")
}

func TestStore_SearchFavoriteRemoveScenario(t *testing.T) {
	ctx := context.Background()
	store := Open(ctx, storage.NewEmptyTestState())

	found := []recipe.Summary{bowl}
	require.NoError(t, store.Add(ctx, found[0]))
	assert.Equal(t, []recipe.Summary{bowl}, store.List())
	assert.True(t, store.Contains(1))

	require.NoError(t, store.Remove(ctx, 1))
	assert.Equal(t, []recipe.Summary{}, store.List())
}

func TestStore_SaveFailureLeavesListUnchanged(t *testing.T) {
	ctx := context.Background()
	state := storage.NewEmptyTestState()
	store := Open(ctx, state)
	require.NoError(t, store.Add(ctx, bowl))

	state.FailSaves(errors.New("disk full"))

	err := store.Add(ctx, toast)
	var storageErr *recipe.StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "save", storageErr.Op)
	assert.Equal(t, []recipe.Summary{bowl}, store.List())

	err = store.Remove(ctx, bowl.ID)
	require.Error(t, err)
	assert.True(t, store.Contains(bowl.ID))
}

func TestStore_Toggle(t *testing.T) {
	ctx := context.Background()
	store := Open(ctx, storage.NewEmptyTestState())

	fav, err := store.Toggle(ctx, bowl)
	require.NoError(t, err)
	assert.True(t, fav)
	assert.True(t, store.Contains(bowl.ID))

	fav, err = store.Toggle(ctx, bowl)
	require.NoError(t, err)
	assert.False(t, fav)
	assert.False(t, store.Contains(bowl.ID))
}

func TestStore_ListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := Open(ctx, storage.NewEmptyTestState())
	require.NoError(t, store.Add(ctx, bowl))

	list := store.List()
	list[0].Title = "changed"
	assert.Equal(t, "Chicken Rice Bowl", store.List()[0].Title)
}

func TestStore_Subscribe(t *testing.T) {
	ctx := context.Background()
	state := storage.NewEmptyTestState()
	store := Open(ctx, state)

	var first, second []Event
	unsubscribe := store.Subscribe(func(e Event) { first = append(first, e) })
	store.Subscribe(func(e Event) { second = append(second, e) })

	require.NoError(t, store.Add(ctx, bowl))
	require.NoError(t, store.Add(ctx, bowl))
	require.NoError(t, store.Add(ctx, toast))
	require.NoError(t, store.Remove(ctx, bowl.ID))

	require.Len(t, first, 3)
	assert.Equal(t, Event{Kind: Added, Recipe: bowl, Favorites: []recipe.Summary{bowl}}, first[0])
	assert.Equal(t, Event{Kind: Added, Recipe: toast, Favorites: []recipe.Summary{bowl, toast}}, first[1])
	assert.Equal(t, Event{Kind: Removed, Recipe: bowl, Favorites: []recipe.Summary{toast}}, first[2])
	assert.Equal(t, first, second)

	unsubscribe()
	unsubscribe()
	require.NoError(t, store.Add(ctx, bowl))
	assert.Len(t, first, 3)
	assert.Len(t, second, 4)

	state.FailSaves(errors.New("disk full"))
	assert.Error(t, store.Remove(ctx, toast.ID))
	assert.Len(t, second, 4, "failed writes are not published")
}

func TestStore_SubscribersGetOwnCopy(t *testing.T) {
	ctx := context.Background()
	store := Open(ctx, storage.NewEmptyTestState())

	var seen []recipe.Summary
	store.Subscribe(func(e Event) { e.Favorites[0].Title = "changed" })
	store.Subscribe(func(e Event) { seen = e.Favorites })

	require.NoError(t, store.Add(ctx, bowl))
	assert.Equal(t, []recipe.Summary{bowl}, seen)
	assert.Equal(t, []recipe.Summary{bowl}, store.List())
}

func TestEventKind_String(t *testing.T) {
	assert.Equal(t, "added", Added.String())
	assert.Equal(t, "removed", Removed.String())
	assert.Equal(t, "unknown", EventKind(0).String())
}
