package api_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/inkroot/inkroot/pkg/internal/database"
	"github.com/inkroot/inkroot/pkg/internal/models"
	"github.com/inkroot/inkroot/pkg/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditorRequiresAuthentication(t *testing.T) {
	app := newTestServer(t)

	res, _ := doJSON(t, app, fiber.MethodPost, "/editor", "", map[string]any{})
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)

	res, _ = doJSON(t, app, fiber.MethodPut, "/editor", "", map[string]any{})
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)

	res, _ = doJSON(t, app, fiber.MethodDelete, "/editor", "", map[string]any{})
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

func TestSaveDraftRejectsBadPayloads(t *testing.T) {
	app := newTestServer(t)
	account, token := signUp(t, "margaret")

	// Missing title
	payload := draftPayload(account.Stamp(), "A Story About Gophers!", true)
	delete(payload, "title")
	res, _ := doJSON(t, app, fiber.MethodPost, "/editor", token, payload)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

	// Missing author
	payload = draftPayload(account.Stamp(), "A Story About Gophers!", true)
	delete(payload, "author")
	res, _ = doJSON(t, app, fiber.MethodPost, "/editor", token, payload)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

	// Unknown field, the schema is closed
	payload = draftPayload(account.Stamp(), "A Story About Gophers!", true)
	payload["surprise"] = "field"
	res, _ = doJSON(t, app, fiber.MethodPost, "/editor", token, payload)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

	count, err := services.CountBlog(database.C)
	require.NoError(t, err)
	assert.Zero(t, count, "rejected payloads must persist nothing")
}

func TestSaveDraftLimit(t *testing.T) {
	app := newTestServer(t)
	account, token := signUp(t, "margaret")

	for idx := 0; idx < services.MaxAuthorDrafts; idx++ {
		payload := draftPayload(account.Stamp(), fmt.Sprintf("Fine Draft Number %d!", idx), true)
		res, raw := doJSON(t, app, fiber.MethodPost, "/editor", token, payload)
		require.Equal(t, fiber.StatusOK, res.StatusCode, "draft %d: %s", idx, raw)
	}

	payload := draftPayload(account.Stamp(), "One Draft Too Many!", true)
	res, raw := doJSON(t, app, fiber.MethodPost, "/editor", token, payload)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	assert.Contains(t, string(raw), "draft limit")

	count, err := services.CountAuthorDrafts(account.ID)
	require.NoError(t, err)
	assert.EqualValues(t, services.MaxAuthorDrafts, count)
}

func TestEditorLifecycle(t *testing.T) {
	app := newTestServer(t)
	account, token := signUp(t, "margaret")
	stamp := account.Stamp()

	// Create a draft
	res, raw := doJSON(t, app, fiber.MethodPost, "/editor", token, draftPayload(stamp, "A Story About Gophers!", true))
	require.Equal(t, fiber.StatusOK, res.StatusCode, "%s", raw)
	var id uint
	require.NoError(t, json.Unmarshal(raw, &id))
	require.NotZero(t, id)

	var blog models.Blog
	require.NoError(t, database.C.First(&blog, id).Error)
	assert.True(t, strings.HasPrefix(blog.Slug, "A-Story-About-Gophers-"), "got slug %q", blog.Slug)
	assert.True(t, blog.IsDraft)

	// The draft shows up in the caller's editor listing
	res, raw = doJSON(t, app, fiber.MethodGet, "/editor", token, nil)
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	var drafts []models.Blog
	require.NoError(t, json.Unmarshal(raw, &drafts))
	require.Len(t, drafts, 1)
	assert.Equal(t, "margaret", drafts[0].AuthorStamp.Username)

	// Drafts are invisible on the public surface
	res, _ = doJSON(t, app, fiber.MethodGet, "/blogs/id/"+blog.Slug, "", nil)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)

	// Update the description in place
	payload := draftPayload(stamp, "A Story About Gophers!", true)
	payload["blog_id"] = blog.Slug
	payload["des"] = "a much better description"
	res, raw = doJSON(t, app, fiber.MethodPut, "/editor", token, payload)
	require.Equal(t, fiber.StatusOK, res.StatusCode, "%s", raw)
	assert.JSONEq(t, `"Success"`, string(raw))

	// Publish the existing draft by id
	payload["_id"] = id
	payload["draft"] = false
	res, raw = doJSON(t, app, fiber.MethodPost, "/editor/publish", token, payload)
	require.Equal(t, fiber.StatusOK, res.StatusCode, "%s", raw)
	var publishedId uint
	require.NoError(t, json.Unmarshal(raw, &publishedId))
	assert.Equal(t, id, publishedId)

	// The published blog is publicly readable and reflects the update
	res, raw = doJSON(t, app, fiber.MethodGet, "/blogs/id/"+blog.Slug, "", nil)
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	var fetched models.Blog
	require.NoError(t, json.Unmarshal(raw, &fetched))
	assert.Equal(t, "A Story About Gophers!", fetched.Title)
	assert.Equal(t, "a much better description", fetched.Description)
	assert.EqualValues(t, []string{"testing", "go"}, []string(fetched.Tags))
	assert.False(t, fetched.IsDraft)
	assert.NotNil(t, fetched.PublishedAt)
	assert.Equal(t, account.ID, fetched.AuthorStamp.UserID)

	// Delete, then the slug is gone for good
	res, raw = doJSON(t, app, fiber.MethodDelete, "/editor", token, map[string]any{
		"blog_id": blog.Slug,
		"author":  stamp,
	})
	require.Equal(t, fiber.StatusOK, res.StatusCode, "%s", raw)
	assert.JSONEq(t, `"success"`, string(raw))

	res, _ = doJSON(t, app, fiber.MethodDelete, "/editor", token, map[string]any{
		"blog_id": blog.Slug,
		"author":  stamp,
	})
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}

func TestUpdateDraftOwnership(t *testing.T) {
	app := newTestServer(t)
	alice, _ := signUp(t, "alice")
	bob, bobToken := signUp(t, "bob")

	blog, err := services.NewBlog(alice, models.Blog{
		Title:       "Alice Writes A Story!",
		Content:     "original content",
		Description: "original description",
		IsDraft:     true,
	})
	require.NoError(t, err)

	// Bob claiming Alice's author block is caught by the payload pre-check
	payload := draftPayload(alice.Stamp(), "Alice Writes A Story!", true)
	payload["blog_id"] = blog.Slug
	payload["des"] = "tampered"
	res, _ := doJSON(t, app, fiber.MethodPut, "/editor", bobToken, payload)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

	// Bob with his own author block is caught by the stored-row check
	payload = draftPayload(bob.Stamp(), "Alice Writes A Story!", true)
	payload["blog_id"] = blog.Slug
	payload["des"] = "tampered"
	res, _ = doJSON(t, app, fiber.MethodPut, "/editor", bobToken, payload)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

	var after models.Blog
	require.NoError(t, database.C.First(&after, blog.ID).Error)
	assert.Equal(t, "original description", after.Description)
	assert.Equal(t, "original content", after.Content)
}

func TestUpdateDraftUnknownSlug(t *testing.T) {
	app := newTestServer(t)
	account, token := signUp(t, "margaret")

	payload := draftPayload(account.Stamp(), "A Story About Gophers!", true)
	payload["blog_id"] = "Never-Saved-xxxxx"
	res, _ := doJSON(t, app, fiber.MethodPut, "/editor", token, payload)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}

func TestPublishFreshKeepsCallerDraftFlag(t *testing.T) {
	app := newTestServer(t)
	account, token := signUp(t, "margaret")

	// Publishing a payload that still carries draft=true keeps it unlisted
	res, raw := doJSON(t, app, fiber.MethodPost, "/editor/publish", token, draftPayload(account.Stamp(), "Not Ready Yet, Honest!", true))
	require.Equal(t, fiber.StatusOK, res.StatusCode, "%s", raw)
	var id uint
	require.NoError(t, json.Unmarshal(raw, &id))

	var blog models.Blog
	require.NoError(t, database.C.First(&blog, id).Error)
	assert.True(t, blog.IsDraft)

	res, _ = doJSON(t, app, fiber.MethodGet, "/blogs/id/"+blog.Slug, "", nil)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)

	// A draft=false payload goes straight to the public surface
	res, raw = doJSON(t, app, fiber.MethodPost, "/editor/publish", token, draftPayload(account.Stamp(), "Ready For The World!", false))
	require.Equal(t, fiber.StatusOK, res.StatusCode, "%s", raw)
	require.NoError(t, json.Unmarshal(raw, &id))
	// Reset the struct: GORM adds a leftover primary key to the query conditions.
	blog = models.Blog{}
	require.NoError(t, database.C.First(&blog, id).Error)

	res, _ = doJSON(t, app, fiber.MethodGet, "/blogs/id/"+blog.Slug, "", nil)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}
