package api

import "github.com/gofiber/fiber/v2"

func MapAPIs(app *fiber.App) {
	editor := app.Group("/editor")
	{
		editor.Get("/", listDrafts)
		editor.Post("/", saveDraft)
		editor.Put("/", updateDraft)
		editor.Delete("/", deleteDraft)
		editor.Post("/publish", publishBlog)
	}

	blogs := app.Group("/blogs")
	{
		blogs.Get("/", listRecentBlogs)
		blogs.Get("/id/:blogId", getBlog)
		blogs.Get("/like/id/:blogId", getBlogLike)
		blogs.Post("/like/id/:blogId", toggleBlogLike)
	}
}
