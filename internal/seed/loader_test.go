package seed

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/Lelo88/catalog-editor/internal/products"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	loadFn func(ctx context.Context) ([]products.Product, error)
}

func (source stubSource) Load(ctx context.Context) ([]products.Product, error) {
	return source.loadFn(ctx)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestLoader_Run(t *testing.T) {
	t.Run("seeds the store once", func(t *testing.T) {
		store := products.NewStore()
		loader := NewLoader(Static{Products: DefaultProducts()}, store, discardLogger())

		require.True(t, store.IsLoading())
		require.NoError(t, loader.Run(context.Background()))

		snapshot := store.Snapshot()
		require.False(t, snapshot.IsLoading)
		require.Equal(t, DefaultProducts(), snapshot.Products)

		err := loader.Run(context.Background())
		require.ErrorIs(t, err, products.ErrorAlreadySeeded)
	})

	t.Run("source error leaves store loading", func(t *testing.T) {
		loadErr := errors.New("boom")
		store := products.NewStore()
		loader := NewLoader(stubSource{loadFn: func(ctx context.Context) ([]products.Product, error) {
			return nil, loadErr
		}}, store, discardLogger())

		err := loader.Run(context.Background())

		require.ErrorIs(t, err, loadErr)
		require.ErrorContains(t, err, "load catalog")
		require.True(t, store.IsLoading())
	})

	t.Run("cancelled context discards result", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		store := products.NewStore()
		loader := NewLoader(stubSource{loadFn: func(ctx context.Context) ([]products.Product, error) {
			cancel()
			return DefaultProducts(), nil
		}}, store, nil)

		err := loader.Run(ctx)

		require.ErrorIs(t, err, context.Canceled)
		require.True(t, store.IsLoading())
		require.Empty(t, store.Snapshot().Products)
	})
}
