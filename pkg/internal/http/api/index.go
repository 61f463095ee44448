package api

import (
	"github.com/gofiber/fiber/v2"
)

func MapAPIs(app *fiber.App) {
	api := app.Group("/api").Name("API")
	{
		accounts := api.Group("/accounts").Name("Accounts API")
		{
			accounts.Post("/", createAccount)
			accounts.Post("/token", createToken)
			accounts.Get("/me", getMyself)
			accounts.Put("/:accountId/role", setAccountRole)
			accounts.Get("/:accountId/comments", listCommentByAccount)
		}

		posts := api.Group("/posts").Name("Posts API")
		{
			posts.Get("/", listPost)
			posts.Get("/featured", listFeaturedPost)
			posts.Get("/search", searchPost)
			posts.Get("/drafts", listDraftPost)
			posts.Get("/:postId", getPost)
			posts.Post("/", createPost)
			posts.Put("/:postId", editPost)
			posts.Delete("/:postId", deletePost)
			posts.Post("/:postId/publish", publishPost)
			posts.Post("/:postId/unpublish", unpublishPost)
			posts.Post("/:postId/feature", featurePost)
			posts.Post("/:postId/unfeature", unfeaturePost)
			posts.Get("/:postId/comments", listCommentByPost)
			posts.Post("/:postId/comments", createComment)
		}

		comments := api.Group("/comments").Name("Comments API")
		{
			comments.Get("/pending", listPendingComment)
			comments.Get("/:commentId", getComment)
			comments.Post("/:commentId/replies", replyComment)
			comments.Put("/:commentId", editComment)
			comments.Delete("/:commentId", deleteComment)
			comments.Post("/:commentId/approve", approveComment)
			comments.Post("/:commentId/reject", rejectComment)
		}

		categories := api.Group("/categories").Name("Categories API")
		{
			categories.Get("/", listCategory)
			categories.Get("/popular", listPopularCategory)
			categories.Get("/:category", getCategory)
			categories.Post("/", createCategory)
			categories.Put("/:categoryId", editCategory)
			categories.Delete("/:categoryId", deleteCategory)
		}

		tags := api.Group("/tags").Name("Tags API")
		{
			tags.Get("/", listTag)
			tags.Get("/popular", listPopularTag)
			tags.Get("/:tag", getTag)
			tags.Post("/", createTag)
			tags.Put("/:tagId", editTag)
			tags.Delete("/:tagId", deleteTag)
		}
	}
}
