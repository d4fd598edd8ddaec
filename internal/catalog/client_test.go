package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productsJSON = `[
	{"id": "p1", "name": "Kopi Susu", "description": "Iced coffee with milk",
	 "price": 10000, "url_image": "https://img.example/p1.jpg", "stock": 5},
	{"id": "p2", "name": "Teh Manis", "description": "Sweet tea",
	 "price": 2500.5, "url_image": "https://img.example/p2.jpg", "stock": 10}
]`

func newCatalogServer(t *testing.T, token string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/products":
			_, _ = w.Write([]byte(productsJSON))
		case "/products/p1":
			_, _ = w.Write([]byte(`{"id": "p1", "name": "Kopi Susu", "description": "Iced coffee with milk",
				"price": 10000, "url_image": "https://img.example/p1.jpg", "stock": 5}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestClient_ListProducts(t *testing.T) {
	srv := newCatalogServer(t, "secret")
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, Token: "secret"})

	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, "Kopi Susu", products[0].Name)
	assert.Equal(t, "Iced coffee with milk", products[0].Description)
	assert.Equal(t, "10000", products[0].Price.String())
	assert.Equal(t, "https://img.example/p1.jpg", products[0].ImageURL)
	assert.Equal(t, 5, products[0].Stock)

	assert.Equal(t, "2500.5", products[1].Price.String())
}

func TestClient_ListProducts_BadToken(t *testing.T) {
	srv := newCatalogServer(t, "secret")
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, Token: "wrong"})

	_, err := c.ListProducts(context.Background())
	require.Error(t, err)
}

func TestClient_ListProducts_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not": "an array"}`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, Token: "secret"})

	_, err := c.ListProducts(context.Background())
	require.Error(t, err)
}

func TestClient_GetProduct(t *testing.T) {
	srv := newCatalogServer(t, "secret")
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, Token: "secret"})

	p, err := c.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Kopi Susu", p.Name)
	assert.Equal(t, 5, p.Stock)
}

func TestClient_GetProduct_NotFound(t *testing.T) {
	srv := newCatalogServer(t, "secret")
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, Token: "secret"})

	_, err := c.GetProduct(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestClient_ServerDown(t *testing.T) {
	srv := newCatalogServer(t, "secret")
	srv.Close() // immediately unreachable

	c := NewClient(ClientConfig{BaseURL: srv.URL, Token: "secret"})

	_, err := c.ListProducts(context.Background())
	require.Error(t, err)
}
