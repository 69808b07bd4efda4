package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI is an in-memory stand-in for the reviews server, honoring the
// same fails-closed contract.
type fakeAPI struct {
	mu      sync.Mutex
	seq     int
	reviews []Review          // newest first
	tokens  map[string]string // id -> token
	hits    int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{tokens: make(map[string]string)}
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/reviews/summary", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.hits++

		var summary RatingSummary
		summary.Count = int64(len(f.reviews))
		if summary.Count > 0 {
			total := 0
			for _, review := range f.reviews {
				total += review.Rating
			}
			avg := float64(total) / float64(summary.Count)
			summary.Average = &avg
		}
		json.NewEncoder(w).Encode(summary)
	})
	mux.HandleFunc("/api/v1/reviews", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.hits++

		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(f.reviews)
		case http.MethodPost:
			var req struct {
				Name    string `json:"name"`
				Rating  int    `json:"rating"`
				Comment string `json:"comment"`
			}
			json.NewDecoder(r.Body).Decode(&req)

			f.seq++
			id := fmt.Sprintf("rv-%d", f.seq)
			token := fmt.Sprintf("tok-%d", f.seq)
			f.tokens[id] = token
			f.reviews = append([]Review{{
				ID:        id,
				Name:      req.Name,
				Rating:    req.Rating,
				Comment:   req.Comment,
				CreatedAt: time.Now(),
			}}, f.reviews...)

			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id":           id,
				"delete_token": token,
				"created_at":   time.Now(),
			})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/v1/reviews/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.hits++

		id := strings.TrimPrefix(r.URL.Path, "/api/v1/reviews/")
		var req struct {
			DeleteToken string `json:"delete_token"`
			Name        string `json:"name"`
			Rating      int    `json:"rating"`
			Comment     string `json:"comment"`
		}
		json.NewDecoder(r.Body).Decode(&req)

		if stored, ok := f.tokens[id]; !ok || stored != req.DeleteToken {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "Review not found"})
			return
		}

		switch r.Method {
		case http.MethodPut:
			for i := range f.reviews {
				if f.reviews[i].ID == id {
					f.reviews[i].Name = req.Name
					f.reviews[i].Rating = req.Rating
					f.reviews[i].Comment = req.Comment
					break
				}
			}
		case http.MethodDelete:
			delete(f.tokens, id)
			for i, review := range f.reviews {
				if review.ID == id {
					f.reviews = append(f.reviews[:i], f.reviews[i+1:]...)
					break
				}
			}
		}
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	})
	return mux
}

func (f *fakeAPI) hitCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits
}

func newTestClient(t *testing.T) (*Client, *fakeAPI, *httptest.Server) {
	t.Helper()

	api := newFakeAPI()
	server := httptest.NewServer(api.handler())
	t.Cleanup(server.Close)

	store, err := OpenCredentialStore(filepath.Join(t.TempDir(), "credentials.json"))
	require.NoError(t, err)

	return New(server.URL, store), api, server
}

func TestCreateReviewStoresCredential(t *testing.T) {
	c, _, _ := newTestClient(t)
	ctx := context.Background()

	created, err := c.CreateReview(ctx, "Alice", 5, "Great work")
	require.NoError(t, err)
	assert.True(t, created.IsOwnReview)

	token, ok := c.Store().Get(created.ID)
	assert.True(t, ok)
	assert.NotEmpty(t, token)

	reviews, err := c.ListReviews(ctx)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Alice", reviews[0].Name)
	assert.True(t, reviews[0].IsOwnReview)
}

func TestListAnnotatesForeignReviewsAsNotOwn(t *testing.T) {
	c, _, server := newTestClient(t)
	ctx := context.Background()

	_, err := c.CreateReview(ctx, "Alice", 5, "Great work")
	require.NoError(t, err)

	// A second machine with its own empty credential store.
	otherStore, err := OpenCredentialStore(filepath.Join(t.TempDir(), "credentials.json"))
	require.NoError(t, err)
	other := New(server.URL, otherStore)

	reviews, err := other.ListReviews(ctx)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.False(t, reviews[0].IsOwnReview)
}

func TestUpdateWithoutCredentialFailsClosed(t *testing.T) {
	c, api, _ := newTestClient(t)
	ctx := context.Background()

	before := api.hitCount()
	ok, err := c.UpdateReview(ctx, "rv-unknown", "Alice", 4, "edited")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, before, api.hitCount(), "no credential means no network call")
}

func TestUpdateWithTamperedCredentialFailsClosed(t *testing.T) {
	c, _, _ := newTestClient(t)
	ctx := context.Background()

	created, err := c.CreateReview(ctx, "Alice", 5, "Great work")
	require.NoError(t, err)

	require.NoError(t, c.Store().Put(created.ID, "tampered-token"))

	ok, err := c.UpdateReview(ctx, created.ID, "Alice", 4, "edited")
	require.NoError(t, err)
	assert.False(t, ok)

	reviews, err := c.ListReviews(ctx)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 5, reviews[0].Rating, "row unchanged")
}

func TestDeleteRemovesCredential(t *testing.T) {
	c, _, _ := newTestClient(t)
	ctx := context.Background()

	created, err := c.CreateReview(ctx, "Alice", 5, "Great work")
	require.NoError(t, err)

	ok, err := c.DeleteReview(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, present := c.Store().Get(created.ID)
	assert.False(t, present, "credential removed after successful delete")

	reviews, err := c.ListReviews(ctx)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestValidationBlocksBeforeNetwork(t *testing.T) {
	c, api, _ := newTestClient(t)
	ctx := context.Background()

	before := api.hitCount()

	var validationErr *ValidationError
	_, err := c.CreateReview(ctx, "   ", 5, "comment")
	require.Error(t, err)
	assert.True(t, errors.As(err, &validationErr))

	_, err = c.CreateReview(ctx, "Alice", 0, "comment")
	require.Error(t, err)
	assert.True(t, errors.As(err, &validationErr))

	_, err = c.CreateReview(ctx, "Alice", 5, "")
	require.Error(t, err)
	assert.True(t, errors.As(err, &validationErr))

	assert.Equal(t, before, api.hitCount(), "invalid input never reaches the server")
}

func TestSummaryEmptyHasNoAverage(t *testing.T) {
	c, _, _ := newTestClient(t)

	summary, err := c.Summary(context.Background())
	require.NoError(t, err)
	assert.Nil(t, summary.Average)
	assert.Zero(t, summary.Count)
}
