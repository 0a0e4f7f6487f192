package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/inkroot/inkroot/pkg/internal/auth"
	"github.com/inkroot/inkroot/pkg/internal/database"
	"github.com/inkroot/inkroot/pkg/internal/http/exts"
	"github.com/inkroot/inkroot/pkg/internal/models"
	"github.com/inkroot/inkroot/pkg/internal/services"
	"github.com/samber/lo"
	"gorm.io/datatypes"
)

func saveDraft(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data struct {
		ID      *uint               `json:"_id"`
		BlogID  *string             `json:"blog_id"`
		Title   string              `json:"title" validate:"required"`
		Banner  string              `json:"banner"`
		Content string              `json:"content"`
		Tags    []string            `json:"tags"`
		Des     string              `json:"des"`
		Author  *models.AuthorStamp `json:"author" validate:"required"`
		Draft   *bool               `json:"draft"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	// Count and insert are two round trips; concurrent saves from the same
	// author can transiently overshoot the cap.
	count, err := services.CountAuthorDrafts(user.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if count >= services.MaxAuthorDrafts {
		return fiber.NewError(
			fiber.StatusBadRequest,
			fmt.Sprintf("draft limit reached, maximum is %d", services.MaxAuthorDrafts),
		)
	}

	item := models.Blog{
		Title:       data.Title,
		Banner:      data.Banner,
		Content:     data.Content,
		Tags:        datatypes.NewJSONSlice(data.Tags),
		Description: data.Des,
		Language:    services.DetectLanguage(data.Content),
		IsDraft:     lo.FromPtr(data.Draft),
	}

	item, err = services.NewBlog(user, item)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(item.ID)
}

func listDrafts(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	items, err := services.ListAuthorDrafts(user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(items)
}

func updateDraft(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data struct {
		ID      *uint               `json:"_id"`
		BlogID  *string             `json:"blog_id"`
		Title   string              `json:"title" validate:"required"`
		Banner  string              `json:"banner"`
		Content string              `json:"content"`
		Tags    []string            `json:"tags"`
		Des     string              `json:"des"`
		Author  *models.AuthorStamp `json:"author" validate:"required"`
		Draft   *bool               `json:"draft"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if data.Author.UserID != user.ID {
		return fiber.NewError(fiber.StatusBadRequest, "you are not authorized to update this blog")
	}

	// Ownership is decided by the stored row, never by the payload alone.
	item, err := services.GetBlogBySlug(database.C, lo.FromPtr(data.BlogID))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if item.AuthorID != user.ID {
		return fiber.NewError(fiber.StatusBadRequest, "you are not authorized to update this blog")
	}

	affected, err := services.UpdateBlogBySlug(item.Slug, map[string]any{
		"title":       data.Title,
		"banner":      data.Banner,
		"content":     data.Content,
		"tags":        datatypes.NewJSONSlice(data.Tags),
		"description": data.Des,
		"language":    services.DetectLanguage(data.Content),
	})
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if affected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "no blog matched the given id")
	}

	return c.JSON("Success")
}

func deleteDraft(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data struct {
		BlogID string              `json:"blog_id" validate:"required"`
		Author *models.AuthorStamp `json:"author" validate:"required"`
		Draft  *bool               `json:"draft"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if data.Author.UserID != user.ID {
		return fiber.NewError(fiber.StatusBadRequest, "you are not authorized for this action")
	}

	item, err := services.GetBlogBySlug(database.C, data.BlogID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if item.AuthorID != user.ID {
		return fiber.NewError(fiber.StatusBadRequest, "you are not authorized for this action")
	}

	affected, err := services.DeleteBlogBySlug(item.Slug)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if affected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "no blog matched the given id")
	}

	return c.JSON("success")
}

func publishBlog(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data struct {
		ID      *uint               `json:"_id"`
		BlogID  *string             `json:"blog_id"`
		Title   string              `json:"title" validate:"required"`
		Banner  string              `json:"banner"`
		Content string              `json:"content"`
		Tags    []string            `json:"tags"`
		Des     string              `json:"des"`
		Author  *models.AuthorStamp `json:"author" validate:"required"`
		Draft   *bool               `json:"draft"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	// No identifier means a fresh blog; the caller still controls the draft
	// flag, so publishing a draft-flagged payload keeps it unlisted.
	if data.ID == nil {
		item := models.Blog{
			Title:       data.Title,
			Banner:      data.Banner,
			Content:     data.Content,
			Tags:        datatypes.NewJSONSlice(data.Tags),
			Description: data.Des,
			Language:    services.DetectLanguage(data.Content),
			IsDraft:     lo.FromPtr(data.Draft),
		}

		item, err := services.NewBlog(user, item)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(item.ID)
	}

	item, err := services.GetBlog(database.C, *data.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if item.AuthorID != user.ID || data.Author.UserID != user.ID {
		return fiber.NewError(fiber.StatusBadRequest, "you are not authorized to publish this blog")
	}

	item.Title = data.Title
	item.Banner = data.Banner
	item.Content = data.Content
	item.Tags = datatypes.NewJSONSlice(data.Tags)
	item.Description = data.Des
	item.Language = services.DetectLanguage(data.Content)

	if item, err = services.PublishBlog(item); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(item.ID)
}
