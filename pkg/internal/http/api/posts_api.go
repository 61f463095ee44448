package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rowanlabs/inkwell/pkg/internal/database"
	"github.com/rowanlabs/inkwell/pkg/internal/http/exts"
	"github.com/rowanlabs/inkwell/pkg/internal/models"
	"github.com/rowanlabs/inkwell/pkg/internal/services"
	"github.com/rowanlabs/inkwell/pkg/internal/status"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func universalPostFilter(c *fiber.Ctx, tx *gorm.DB) *gorm.DB {
	tx = services.FilterPostPublished(tx)

	if len(c.Query("author")) > 0 {
		if author, err := services.GetAccountWithName(c.Query("author")); err == nil {
			tx = services.FilterPostWithAuthor(tx, author.ID)
		} else {
			tx = tx.Where("1 = 0")
		}
	}

	if len(c.Query("category")) > 0 {
		tx = services.FilterPostWithCategory(tx, c.Query("category"))
	}
	if len(c.Query("tag")) > 0 {
		tx = services.FilterPostWithTag(tx, c.Query("tag"))
	}

	return tx
}

// viewerSession derives the viewing session key used by the view throttle.
// Authenticated users count per account, everyone else per browser cookie.
func viewerSession(c *fiber.Ctx) string {
	if user, ok := exts.AuthenticatedUser(c); ok {
		return "account#" + strconv.Itoa(int(user.ID))
	}
	if sid := c.Cookies("viewer_session"); len(sid) > 0 {
		return sid
	}

	sid := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     "viewer_session",
		Value:    sid,
		MaxAge:   365 * 24 * 60 * 60,
		HTTPOnly: true,
	})
	return sid
}

// canManagePost reports whether the actor owns the post or moderates the site.
func canManagePost(user models.Account, item models.Post) bool {
	return item.AuthorID == user.ID || user.IsAdmin()
}

func getPost(c *fiber.Ctx) error {
	item, bySlug, err := services.GetPostByAlias(c.Params("postId"))
	if err != nil {
		return err
	}

	// Drafts stay private to their author
	if item.IsDraft {
		user, ok := exts.AuthenticatedUser(c)
		if !ok || !canManagePost(user, item) {
			return status.NotFound("post was not found")
		}
	} else if bySlug {
		// Reading by slug is the public read path and counts a view,
		// throttled per viewing session.
		if services.CountPostView(item, viewerSession(c)) {
			item.ViewCount++
		}
	}

	if c.QueryBool("render", false) {
		rendered, err := services.RenderPostContent(item.Content)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"post":         item,
			"content_html": rendered,
		})
	}

	return c.JSON(item)
}

func listPost(c *fiber.Ctx) error {
	take := c.QueryInt("take", 10)
	offset := c.QueryInt("offset", 0)

	tx := universalPostFilter(c, database.C)

	count, err := services.CountPost(tx)
	if err != nil {
		return err
	}

	items, err := services.ListPost(tx, take, offset, "published_at DESC")
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  items,
	})
}

func listFeaturedPost(c *fiber.Ctx) error {
	take := c.QueryInt("take", 10)

	tx := services.FilterPostFeatured(universalPostFilter(c, database.C))

	items, err := services.ListPost(tx, take, 0, "published_at DESC")
	if err != nil {
		return err
	}

	return c.JSON(items)
}

func searchPost(c *fiber.Ctx) error {
	take := c.QueryInt("take", 10)
	offset := c.QueryInt("offset", 0)

	probe := c.Query("probe")
	if len(probe) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "probe is required")
	}

	tx := services.FilterPostWithFuzzySearch(universalPostFilter(c, database.C), probe)

	count, err := services.CountPost(tx)
	if err != nil {
		return err
	}

	items, err := services.ListPost(tx, take, offset, "published_at DESC")
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  items,
	})
}

func listDraftPost(c *fiber.Ctx) error {
	take := c.QueryInt("take", 10)
	offset := c.QueryInt("offset", 0)

	user, err := exts.EnsureAuthenticated(c)
	if err != nil {
		return err
	}

	tx := services.FilterPostWithAuthorDraft(database.C, user.ID)

	count, err := services.CountPost(tx)
	if err != nil {
		return err
	}

	items, err := services.ListPost(tx, take, offset, "created_at DESC")
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  items,
	})
}

func createPost(c *fiber.Ctx) error {
	user, err := exts.EnsureAuthor(c)
	if err != nil {
		return err
	}

	var data struct {
		Title         string   `json:"title" validate:"required,max=200"`
		Content       string   `json:"content" validate:"required"`
		Summary       string   `json:"summary" validate:"max=500"`
		CoverImage    *string  `json:"cover_image"`
		Attachments   []string `json:"attachments"`
		AllowComments *bool    `json:"allow_comments"`
		IsDraft       bool     `json:"is_draft"`
		Categories    []string `json:"categories"`
		Tags          []string `json:"tags" validate:"dive,max=50"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item := models.Post{
		Title:         data.Title,
		Content:       data.Content,
		Summary:       data.Summary,
		CoverImage:    data.CoverImage,
		Attachments:   datatypes.NewJSONSlice(data.Attachments),
		IsDraft:       data.IsDraft,
		AllowComments: true,
	}
	if data.AllowComments != nil {
		item.AllowComments = *data.AllowComments
	}

	item, err = services.NewPost(user, item, data.Categories, data.Tags)
	if err != nil {
		return err
	}

	return c.JSON(item)
}

func editPost(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("postId", 0)
	user, err := exts.EnsureAuthor(c)
	if err != nil {
		return err
	}

	var data struct {
		Title         *string   `json:"title" validate:"omitempty,max=200"`
		Content       *string   `json:"content"`
		Summary       *string   `json:"summary" validate:"omitempty,max=500"`
		CoverImage    *string   `json:"cover_image"`
		Attachments   *[]string `json:"attachments"`
		AllowComments *bool     `json:"allow_comments"`
		IsDraft       *bool     `json:"is_draft"`
		Categories    *[]string `json:"categories"`
		Tags          *[]string `json:"tags" validate:"omitempty,dive,max=50"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.GetPost(database.C, uint(id))
	if err != nil {
		return err
	}
	if !canManagePost(user, item) {
		return status.Forbidden("only the post author or an admin may edit it")
	}

	item, err = services.UpdatePost(item.ID, services.PostUpdate{
		Title:         data.Title,
		Content:       data.Content,
		Summary:       data.Summary,
		CoverImage:    data.CoverImage,
		Attachments:   data.Attachments,
		AllowComments: data.AllowComments,
		IsDraft:       data.IsDraft,
		Categories:    data.Categories,
		Tags:          data.Tags,
	})
	if err != nil {
		return err
	}

	return c.JSON(item)
}

func deletePost(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("postId", 0)
	user, err := exts.EnsureAuthor(c)
	if err != nil {
		return err
	}

	item, err := services.GetPost(database.C, uint(id))
	if err != nil {
		return err
	}
	if !canManagePost(user, item) {
		return status.Forbidden("only the post author or an admin may delete it")
	}

	if err := services.DeletePost(item); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusOK)
}

func publishPost(c *fiber.Ctx) error {
	return setPostPublication(c, true)
}

func unpublishPost(c *fiber.Ctx) error {
	return setPostPublication(c, false)
}

func setPostPublication(c *fiber.Ctx, published bool) error {
	id, _ := c.ParamsInt("postId", 0)
	user, err := exts.EnsureAuthor(c)
	if err != nil {
		return err
	}

	item, err := services.GetPost(database.C, uint(id))
	if err != nil {
		return err
	}
	if !canManagePost(user, item) {
		return status.Forbidden("only the post author or an admin may change its publication")
	}

	if published {
		item, err = services.PublishPost(item.ID)
	} else {
		item, err = services.UnpublishPost(item.ID)
	}
	if err != nil {
		return err
	}

	return c.JSON(item)
}

func featurePost(c *fiber.Ctx) error {
	return setPostFeatured(c, true)
}

func unfeaturePost(c *fiber.Ctx) error {
	return setPostFeatured(c, false)
}

func setPostFeatured(c *fiber.Ctx, featured bool) error {
	id, _ := c.ParamsInt("postId", 0)
	if _, err := exts.EnsureAdmin(c); err != nil {
		return err
	}

	item, err := services.SetPostFeatured(uint(id), featured)
	if err != nil {
		return err
	}

	return c.JSON(item)
}
