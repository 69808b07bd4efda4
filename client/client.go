package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Review is a testimonial as the API returns it, annotated locally with
// whether this machine's credential store can prove authorship.
type Review struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Rating    int         `json:"rating"`
	Comment   string      `json:"comment"`
	Reply     *OwnerReply `json:"reply,omitempty"`
	CreatedAt time.Time   `json:"created_at"`

	IsOwnReview bool `json:"-"`
}

type OwnerReply struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// RatingSummary mirrors the server's canonical aggregate. Average is nil
// when there are no reviews.
type RatingSummary struct {
	Average *float64 `json:"average"`
	Count   int64    `json:"count"`
}

// ValidationError reports a field constraint caught before any network call.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

// Client talks to the reviews API. Calls time out after 10 seconds and are
// never retried automatically.
type Client struct {
	baseURL    string
	store      *CredentialStore
	httpClient *http.Client
}

// New creates an API client backed by the given credential store.
func New(baseURL string, store *CredentialStore) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		store:      store,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Store exposes the credential store for ownership checks.
func (c *Client) Store() *CredentialStore {
	return c.store
}

func validateReview(name string, rating int, comment string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Reason: "name must not be empty"}
	}
	if rating < 1 || rating > 5 {
		return &ValidationError{Reason: "rating must be between 1 and 5"}
	}
	if strings.TrimSpace(comment) == "" {
		return &ValidationError{Reason: "comment must not be empty"}
	}
	return nil
}

// ListReviews fetches the full review set, newest first, with ownership
// annotated from the credential store.
func (c *Client) ListReviews(ctx context.Context) ([]Review, error) {
	var reviews []Review
	if err := c.get(ctx, "/api/v1/reviews", &reviews); err != nil {
		return nil, err
	}
	for i := range reviews {
		_, reviews[i].IsOwnReview = c.store.Get(reviews[i].ID)
	}
	return reviews, nil
}

// CreateReview submits a new review and banks the returned delete token
// before reporting success.
func (c *Client) CreateReview(ctx context.Context, name string, rating int, comment string) (Review, error) {
	if err := validateReview(name, rating, comment); err != nil {
		return Review{}, err
	}

	body := map[string]interface{}{
		"name":    name,
		"rating":  rating,
		"comment": comment,
	}
	var created struct {
		ID          string    `json:"id"`
		DeleteToken string    `json:"delete_token"`
		CreatedAt   time.Time `json:"created_at"`
	}
	if err := c.post(ctx, "/api/v1/reviews", body, &created); err != nil {
		return Review{}, err
	}

	if err := c.store.Put(created.ID, created.DeleteToken); err != nil {
		return Review{}, fmt.Errorf("review created but storing its credential failed: %w", err)
	}

	return Review{
		ID:          created.ID,
		Name:        name,
		Rating:      rating,
		Comment:     comment,
		CreatedAt:   created.CreatedAt,
		IsOwnReview: true,
	}, nil
}

// UpdateReview edits a review this machine owns. It returns false, without
// an error, when there is no stored credential or the server refuses the
// token. The caller cannot tell which, and neither can an attacker.
func (c *Client) UpdateReview(ctx context.Context, id, name string, rating int, comment string) (bool, error) {
	if err := validateReview(name, rating, comment); err != nil {
		return false, err
	}

	token, ok := c.store.Get(id)
	if !ok {
		return false, nil
	}

	body := map[string]interface{}{
		"delete_token": token,
		"name":         name,
		"rating":       rating,
		"comment":      comment,
	}
	ok, err := c.mutate(ctx, http.MethodPut, "/api/v1/reviews/"+id, body)
	if err != nil {
		return false, err
	}
	return ok, nil
}

// DeleteReview removes a review this machine owns and drops the stored
// credential on success. Same fails-closed contract as UpdateReview.
func (c *Client) DeleteReview(ctx context.Context, id string) (bool, error) {
	token, ok := c.store.Get(id)
	if !ok {
		return false, nil
	}

	body := map[string]interface{}{"delete_token": token}
	ok, err := c.mutate(ctx, http.MethodDelete, "/api/v1/reviews/"+id, body)
	if err != nil {
		return false, err
	}
	if ok {
		if err := c.store.Remove(id); err != nil {
			return true, fmt.Errorf("review deleted but removing its credential failed: %w", err)
		}
	}
	return ok, nil
}

// Summary fetches the canonical rating aggregate.
func (c *Client) Summary(ctx context.Context) (RatingSummary, error) {
	var summary RatingSummary
	if err := c.get(ctx, "/api/v1/reviews/summary", &summary); err != nil {
		return RatingSummary{}, err
	}
	return summary, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return apiError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// mutate performs a token-gated call. 404 means "no such review or not your
// review" and maps to false; anything else unexpected is a transport error.
func (c *Client) mutate(ctx context.Context, method, path string, body interface{}) (bool, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, apiError(resp)
	}
}

func apiError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		return fmt.Errorf("api: %s (status %d)", body.Error, resp.StatusCode)
	}
	return fmt.Errorf("api: unexpected status %d", resp.StatusCode)
}
