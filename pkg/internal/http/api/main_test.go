package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/inkroot/inkroot/pkg/internal/auth"
	"github.com/inkroot/inkroot/pkg/internal/cache"
	"github.com/inkroot/inkroot/pkg/internal/database"
	ihttp "github.com/inkroot/inkroot/pkg/internal/http"
	"github.com/inkroot/inkroot/pkg/internal/models"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer wires the whole app against a fresh in-memory database.
func newTestServer(t *testing.T) *fiber.App {
	t.Helper()

	viper.Set("security.jwt_secret", "test-secret")
	viper.Set("performance.recent_cache_ttl", 1)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	database.C = db
	require.NoError(t, database.RunMigration(db))
	require.NoError(t, cache.NewStore())

	return ihttp.NewServer().App
}

func signUp(t *testing.T, username string) (models.Account, string) {
	t.Helper()

	account := models.Account{
		Username:   username,
		Email:      username + "@example.com",
		Fullname:   username + " tester",
		ProfileImg: "https://img.example.com/" + username + ".png",
	}
	require.NoError(t, database.C.Create(&account).Error)

	token, err := auth.NewToken(account, time.Hour)
	require.NoError(t, err)

	return account, token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload any) (*nethttp.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if len(token) > 0 {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return res, raw
}

func draftPayload(stamp models.AuthorStamp, title string, draft bool) map[string]any {
	return map[string]any{
		"title":   title,
		"banner":  "",
		"content": "Some long enough testing content for the blog body.",
		"tags":    []string{"testing", "go"},
		"des":     "a short description",
		"author":  stamp,
		"draft":   draft,
	}
}
