package recipebox

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"recipebox/favorites"
)

// NotifyFavorites posts a message to channel for every change to store. The
// returned func stops the notifications.
func NotifyFavorites(ctx context.Context, store *favorites.Store, client SlackClient, channel string) func() {
	return store.Subscribe(func(e favorites.Event) {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := client.PostMessage(ctx, channel, FavoriteMessage(e)); err != nil {
			slog.Error("NOTIFY: Failed to post favorite change", "id", e.Recipe.ID, "error", err)
		}
	})
}

func FavoriteMessage(e favorites.Event) string {
	switch e.Kind {
	case favorites.Added:
		return fmt.Sprintf("Saved %q to favorites (%d saved)", e.Recipe.Title, len(e.Favorites))
	case favorites.Removed:
		return fmt.Sprintf("Removed %q from favorites (%d saved)", e.Recipe.Title, len(e.Favorites))
	default:
		return fmt.Sprintf("Favorites changed (%d saved)", len(e.Favorites))
	}
}
