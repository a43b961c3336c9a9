package tripadvisor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchBody = `{"data":[
	{"location_id":"111","name":"Ritz Paris","rating":"5.0",
	 "address_obj":{"city":"Paris","country":"France","address_string":"15 Place Vendome, Paris"}},
	{"location_id":"222","name":"Le Meurice","rating":"4.5",
	 "address_obj":{"city":"Paris","country":"France"}}
]}`

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, "test-key"), srv
}

func TestSearch(t *testing.T) {
	var gotQuery, gotCategory, gotKey string
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/location/search", r.URL.Path)
		gotQuery = r.URL.Query().Get("searchQuery")
		gotCategory = r.URL.Query().Get("category")
		gotKey = r.URL.Query().Get("key")
		w.Write([]byte(searchBody))
	}))
	defer srv.Close()

	result, err := client.Search(context.Background(), "paris hotels", "hotels", false)
	require.NoError(t, err)

	assert.Equal(t, "paris hotels", gotQuery)
	assert.Equal(t, "hotels", gotCategory)
	assert.Equal(t, "test-key", gotKey)

	require.Len(t, result.Locations, 2)
	assert.Equal(t, "Ritz Paris", result.Locations[0].Name)
	assert.Equal(t, "5.0", result.Locations[0].Rating)
	assert.Equal(t, "Paris", result.Locations[0].Address.City)
	assert.Empty(t, result.Notice)
}

func TestSearchWithPhotos(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/location/search":
			w.Write([]byte(searchBody))
		case r.URL.Path == "/location/111/photos":
			w.Write([]byte(`{"data":[{"id":1,"caption":"lobby",
				"images":{"small":{"url":"https://cdn.example.com/1-s.jpg","width":150,"height":150}}}]}`))
		case r.URL.Path == "/location/222/photos":
			// One location's photos endpoint misbehaving must not fail
			// the search.
			w.WriteHeader(http.StatusInternalServerError)
		default:
			t.Errorf("unexpected request path %q", r.URL.Path)
		}
	}))
	defer srv.Close()

	result, err := client.Search(context.Background(), "paris hotels", "", true)
	require.NoError(t, err)
	require.Len(t, result.Locations, 2)

	require.Len(t, result.Locations[0].Photos, 1)
	assert.Equal(t, "lobby", result.Locations[0].Photos[0].Caption)
	assert.Equal(t, "https://cdn.example.com/1-s.jpg", result.Locations[0].Photos[0].Images["small"].URL)

	require.NotNil(t, result.Locations[1].Photos)
	assert.Empty(t, result.Locations[1].Photos)
}

func TestSearchNotFoundIsEmpty(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	result, err := client.Search(context.Background(), "nowhere", "", false)
	require.NoError(t, err)
	assert.Empty(t, result.Locations)
	assert.Empty(t, result.Notice)
}

func TestSearchForbiddenDegradesWithNotice(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	result, err := client.Search(context.Background(), "paris", "", false)
	require.NoError(t, err)
	assert.Empty(t, result.Locations)
	assert.Contains(t, result.Notice, "access denied")
}

func TestSearchServerError(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := client.Search(context.Background(), "paris", "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestSearchMalformedJSON(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": "not an array`))
	}))
	defer srv.Close()

	_, err := client.Search(context.Background(), "paris", "", false)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "decode"))
}

func TestGetDetails(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/location/111/details", r.URL.Path)
		w.Write([]byte(`{"location_id":"111","name":"Ritz Paris",
			"description":"Historic palace hotel","rating":"5.0","num_reviews":"1234",
			"web_url":"https://www.tripadvisor.com/x",
			"address_obj":{"city":"Paris","country":"France"}}`))
	}))
	defer srv.Close()

	details, err := client.GetDetails(context.Background(), "111")
	require.NoError(t, err)
	require.NotNil(t, details)
	assert.Equal(t, "Ritz Paris", details.Name)
	assert.Equal(t, "Historic palace hotel", details.Description)
	assert.Equal(t, "1234", details.NumReviews)
}

func TestGetDetailsUnknownLocation(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	details, err := client.GetDetails(context.Background(), "999")
	require.NoError(t, err)
	assert.Nil(t, details)
}

func TestGetPhotos(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/location/111/photos", r.URL.Path)
		w.Write([]byte(`{"data":[{"id":7,"images":{"large":{"url":"https://cdn.example.com/7-l.jpg"}}}]}`))
	}))
	defer srv.Close()

	photos, err := client.GetPhotos(context.Background(), "111")
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, 7, photos[0].ID)
}

func TestGetPhotosDeniedIsEmpty(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	photos, err := client.GetPhotos(context.Background(), "111")
	require.NoError(t, err)
	assert.Empty(t, photos)
}
