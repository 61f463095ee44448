package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rowanlabs/inkwell/pkg/internal/http/exts"
	"github.com/rowanlabs/inkwell/pkg/internal/models"
	"github.com/rowanlabs/inkwell/pkg/internal/services"
)

func getComment(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("commentId", 0)

	comment, err := services.GetComment(uint(id))
	if err != nil {
		return err
	}

	return c.JSON(comment)
}

func createComment(c *fiber.Ctx) error {
	postId, _ := c.ParamsInt("postId", 0)
	user, err := exts.EnsureAuthenticated(c)
	if err != nil {
		return err
	}

	var data struct {
		Content  string `json:"content" validate:"required,max=1000"`
		ParentID *uint  `json:"parent_id"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	comment, err := services.NewComment(user.ID, models.Comment{
		Content:  data.Content,
		PostID:   uint(postId),
		ParentID: data.ParentID,
	})
	if err != nil {
		return err
	}

	return c.JSON(comment)
}

func replyComment(c *fiber.Ctx) error {
	parentId, _ := c.ParamsInt("commentId", 0)
	user, err := exts.EnsureAuthenticated(c)
	if err != nil {
		return err
	}

	var data struct {
		Content string `json:"content" validate:"required,max=1000"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	comment, err := services.ReplyComment(uint(parentId), user.ID, models.Comment{
		Content: data.Content,
	})
	if err != nil {
		return err
	}

	return c.JSON(comment)
}

func editComment(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("commentId", 0)
	user, err := exts.EnsureAuthenticated(c)
	if err != nil {
		return err
	}

	var data struct {
		Content string `json:"content" validate:"required,max=1000"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	comment, err := services.EditComment(uint(id), user.ID, data.Content)
	if err != nil {
		return err
	}

	return c.JSON(comment)
}

func deleteComment(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("commentId", 0)
	user, err := exts.EnsureAuthenticated(c)
	if err != nil {
		return err
	}

	if err := services.DeleteComment(uint(id), user.ID, user.IsAdmin()); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusOK)
}

func approveComment(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("commentId", 0)
	if _, err := exts.EnsureAdmin(c); err != nil {
		return err
	}

	comment, err := services.ApproveComment(uint(id))
	if err != nil {
		return err
	}

	return c.JSON(comment)
}

func rejectComment(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("commentId", 0)
	if _, err := exts.EnsureAdmin(c); err != nil {
		return err
	}

	if err := services.RejectComment(uint(id)); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusOK)
}

func listCommentByPost(c *fiber.Ctx) error {
	take := c.QueryInt("take", 10)
	offset := c.QueryInt("offset", 0)
	postId, _ := c.ParamsInt("postId", 0)

	// Moderators may include comments still waiting for approval
	includePending := false
	if c.QueryBool("pending", false) {
		if user, ok := exts.AuthenticatedUser(c); ok && user.IsAdmin() {
			includePending = true
		}
	}

	count := services.CountCommentByPost(uint(postId))
	items, err := services.ListCommentByPost(uint(postId), take, offset, includePending)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  items,
	})
}

func listPendingComment(c *fiber.Ctx) error {
	take := c.QueryInt("take", 10)
	offset := c.QueryInt("offset", 0)

	if _, err := exts.EnsureAdmin(c); err != nil {
		return err
	}

	items, err := services.ListPendingComments(take, offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"count": len(items),
		"data":  items,
	})
}
