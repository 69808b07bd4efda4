package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/amrshakerr/editor_portfolio/database"
	"github.com/amrshakerr/editor_portfolio/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitThenListNewestFirst(t *testing.T) {
	app := setupTestApp(t)

	olderID, _ := createReview(t, app, "Bob", 3, "Solid color grading")
	// Push the first review into the past so the new one is strictly newer.
	require.NoError(t, database.DB.Model(&models.Review{}).
		Where("id = ?", olderID).
		UpdateColumn("created_at", time.Now().Add(-time.Hour)).Error)

	aliceID, _ := createReview(t, app, "Alice", 5, "Great work")

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/reviews", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reviews []models.Review
	require.NoError(t, json.Unmarshal(body, &reviews))
	require.Len(t, reviews, 2)
	assert.Equal(t, aliceID, reviews[0].ID.String())
	assert.Equal(t, "Alice", reviews[0].Name)
	assert.Equal(t, 5, reviews[0].Rating)
	assert.Equal(t, olderID, reviews[1].ID.String())

	// The token hash must never leak through the list.
	assert.NotContains(t, string(body), "delete_token")
	assert.NotContains(t, string(body), "DeleteTokenHash")
}

func TestCreateReviewValidation(t *testing.T) {
	app := setupTestApp(t)

	for _, payload := range []fiber.Map{
		{"name": "", "rating": 5, "comment": "ok"},
		{"name": "Bob", "rating": 0, "comment": "ok"},
		{"name": "Bob", "rating": 6, "comment": "ok"},
		{"name": "Bob", "rating": 3, "comment": ""},
	} {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/reviews", payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "payload %v", payload)
	}
}

func TestUpdateReviewFailsClosed(t *testing.T) {
	app := setupTestApp(t)

	id, _ := createReview(t, app, "Alice", 5, "Great work")

	edit := fiber.Map{
		"delete_token": "0000000000000000",
		"name":         "Mallory",
		"rating":       1,
		"comment":      "rewritten",
	}

	wrongTokenResp, wrongTokenBody := doJSON(t, app, http.MethodPut, "/api/v1/reviews/"+id, edit)
	missingRowResp, missingRowBody := doJSON(t, app, http.MethodPut, "/api/v1/reviews/"+uuid.NewString(), edit)

	// Wrong token and missing row must be byte-identical to the caller.
	assert.Equal(t, http.StatusNotFound, wrongTokenResp.StatusCode)
	assert.Equal(t, http.StatusNotFound, missingRowResp.StatusCode)
	assert.Equal(t, string(missingRowBody), string(wrongTokenBody))

	var stored models.Review
	require.NoError(t, database.DB.First(&stored, "id = ?", id).Error)
	assert.Equal(t, "Alice", stored.Name)
	assert.Equal(t, 5, stored.Rating)
}

func TestUpdateReviewWithToken(t *testing.T) {
	app := setupTestApp(t)

	id, token := createReview(t, app, "Alice", 5, "Great work")

	resp, body := doJSON(t, app, http.MethodPut, "/api/v1/reviews/"+id, fiber.Map{
		"delete_token": token,
		"name":         "Alice",
		"rating":       4,
		"comment":      "Edited after delivery",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var result struct {
		Success bool `json:"success"`
	}
	require.NoError(t, json.Unmarshal(body, &result))
	assert.True(t, result.Success)

	var stored models.Review
	require.NoError(t, database.DB.First(&stored, "id = ?", id).Error)
	assert.Equal(t, 4, stored.Rating)
	assert.Equal(t, "Edited after delivery", stored.Comment)
}

func TestDeleteReviewSecondBrowserKeepsRow(t *testing.T) {
	app := setupTestApp(t)

	id, _ := createReview(t, app, "Alice", 5, "Great work")

	// A browser without the credential can only guess.
	resp, _ := doJSON(t, app, http.MethodDelete, "/api/v1/reviews/"+id, fiber.Map{
		"delete_token": "ffffffffffffffff",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	listResp, body := doJSON(t, app, http.MethodGet, "/api/v1/reviews", nil)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var reviews []models.Review
	require.NoError(t, json.Unmarshal(body, &reviews))
	assert.Len(t, reviews, 1)
}

func TestDeleteReviewWithToken(t *testing.T) {
	app := setupTestApp(t)

	id, token := createReview(t, app, "Alice", 5, "Great work")

	resp, body := doJSON(t, app, http.MethodDelete, "/api/v1/reviews/"+id, fiber.Map{
		"delete_token": token,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	listResp, listBody := doJSON(t, app, http.MethodGet, "/api/v1/reviews", nil)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var reviews []models.Review
	require.NoError(t, json.Unmarshal(listBody, &reviews))
	assert.Empty(t, reviews)
}

func TestRatingSummaryEndpoint(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/reviews/summary", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var empty struct {
		Average *float64 `json:"average"`
		Count   int64    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(body, &empty))
	assert.Nil(t, empty.Average)
	assert.Zero(t, empty.Count)

	for _, rating := range []int{4, 5, 3} {
		createReview(t, app, "Reviewer", rating, "comment")
	}

	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/reviews/summary", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summary struct {
		Average *float64 `json:"average"`
		Count   int64    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(body, &summary))
	require.NotNil(t, summary.Average)
	assert.Equal(t, 4.0, *summary.Average)
	assert.Equal(t, int64(3), summary.Count)
}

func TestListSortModes(t *testing.T) {
	app := setupTestApp(t)

	// Fetch order newest first: ratings 3, 5, 1, 5.
	ids := make([]string, 4)
	for i, rating := range []int{5, 1, 5, 3} {
		id, _ := createReview(t, app, "Reviewer", rating, "comment")
		require.NoError(t, database.DB.Model(&models.Review{}).
			Where("id = ?", id).
			UpdateColumn("created_at", time.Now().Add(time.Duration(i-10)*time.Minute)).Error)
		ids[3-i] = id
	}

	fetchOrder := func(sort string) []string {
		resp, body := doJSON(t, app, http.MethodGet, "/api/v1/reviews?sort="+sort, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var reviews []models.Review
		require.NoError(t, json.Unmarshal(body, &reviews))
		out := make([]string, len(reviews))
		for i, r := range reviews {
			out[i] = r.ID.String()
		}
		return out
	}

	// ids is newest-first with ratings [3, 5, 1, 5].
	assert.Equal(t, ids, fetchOrder("newest"))
	// Highest: the two fives keep their relative fetch order.
	assert.Equal(t, []string{ids[1], ids[3], ids[0], ids[2]}, fetchOrder("highest"))
	assert.Equal(t, []string{ids[2], ids[0], ids[1], ids[3]}, fetchOrder("lowest"))
}
