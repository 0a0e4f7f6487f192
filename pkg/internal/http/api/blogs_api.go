package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/inkroot/inkroot/pkg/internal/auth"
	"github.com/inkroot/inkroot/pkg/internal/database"
	"github.com/inkroot/inkroot/pkg/internal/models"
	"github.com/inkroot/inkroot/pkg/internal/services"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// resolveBlog looks a published blog up by its slug, or by numeric id when
// the path segment parses as one.
func resolveBlog(tx *gorm.DB, id string) (models.Blog, error) {
	if numericId, err := strconv.Atoi(id); err == nil {
		return services.GetBlog(tx, uint(numericId))
	}
	return services.GetBlogBySlug(tx, id)
}

func listRecentBlogs(c *fiber.Ctx) error {
	take := c.QueryInt("take", 20)
	offset := c.QueryInt("offset", 0)

	count, items, err := services.ListRecentBlogs(take, offset)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  items,
	})
}

func getBlog(c *fiber.Ctx) error {
	item, err := resolveBlog(services.FilterBlogDraft(database.C), c.Params("blogId"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	item.TotalLikes = services.CountBlogLikes(item.ID)

	if user, authenticated := c.Locals("user").(models.Account); authenticated {
		services.AddBlogView(item, user.ID)
	}

	return c.JSON(item)
}

func getBlogLike(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	item, err := resolveBlog(database.C, c.Params("blogId"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.JSON(fiber.Map{
		"liked": services.HasLikedBlog(user.ID, item.ID),
		"count": services.CountBlogLikes(item.ID),
	})
}

func toggleBlogLike(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	item, err := resolveBlog(database.C, c.Params("blogId"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	positive, err := services.LikeBlog(user, item)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Status(lo.Ternary(positive, fiber.StatusCreated, fiber.StatusOK)).JSON(fiber.Map{
		"liked": positive,
		"count": services.CountBlogLikes(item.ID),
	})
}
