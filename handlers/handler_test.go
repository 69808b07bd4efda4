package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/amrshakerr/editor_portfolio/database"
	"github.com/amrshakerr/editor_portfolio/models"
	"github.com/amrshakerr/editor_portfolio/routes"
	"github.com/amrshakerr/editor_portfolio/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

// setupTestApp wires the real routes against a fresh in-memory database.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Review{},
		&models.OwnerReply{},
		&models.Project{},
	))

	database.DB = db
	services.InvalidateRatingSummary()

	app := fiber.New()
	routes.PublicRoutes(app)
	routes.AuthRoutes(app)
	routes.ReviewRoutes(app)
	routes.AdminRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, data
}

func createReview(t *testing.T, app *fiber.App, name string, rating int, comment string) (id, token string) {
	t.Helper()

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/reviews", fiber.Map{
		"name":    name,
		"rating":  rating,
		"comment": comment,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var created struct {
		ID          string `json:"id"`
		DeleteToken string `json:"delete_token"`
	}
	require.NoError(t, json.Unmarshal(body, &created))
	require.NotEmpty(t, created.ID)
	require.NotEmpty(t, created.DeleteToken)
	return created.ID, created.DeleteToken
}

func seedOwner(t *testing.T, email, password string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, database.DB.Create(&models.User{
		FullName: "Site Owner",
		Email:    email,
		Password: string(hash),
		Role:     "owner",
	}).Error)
}
