package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rowanlabs/inkwell/pkg/internal/http/exts"
	"github.com/rowanlabs/inkwell/pkg/internal/services"
)

func listTag(c *fiber.Ctx) error {
	take := c.QueryInt("take", 50)
	offset := c.QueryInt("offset", 0)

	items, err := services.ListTagWithPostCount(take, offset)
	if err != nil {
		return err
	}

	return c.JSON(items)
}

func listPopularTag(c *fiber.Ctx) error {
	take := c.QueryInt("take", 10)

	items, err := services.ListPopularTags(take)
	if err != nil {
		return err
	}

	return c.JSON(items)
}

func getTag(c *fiber.Ctx) error {
	tag, err := services.GetTag(c.Params("tag"))
	if err != nil {
		return err
	}

	return c.JSON(tag)
}

func createTag(c *fiber.Ctx) error {
	if _, err := exts.EnsureAdmin(c); err != nil {
		return err
	}

	var data struct {
		Name string `json:"name" validate:"required,max=50"`
		Slug string `json:"slug" validate:"omitempty,max=200,lowercase"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	tag, err := services.NewTag(data.Name, data.Slug)
	if err != nil {
		return err
	}

	return c.JSON(tag)
}

func editTag(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("tagId", 0)
	if _, err := exts.EnsureAdmin(c); err != nil {
		return err
	}

	var data struct {
		Name string `json:"name" validate:"required,max=50"`
		Slug string `json:"slug" validate:"omitempty,max=200,lowercase"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	tag, err := services.GetTagWithID(uint(id))
	if err != nil {
		return err
	}

	tag, err = services.EditTag(tag, data.Name, data.Slug)
	if err != nil {
		return err
	}

	return c.JSON(tag)
}

func deleteTag(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("tagId", 0)
	if _, err := exts.EnsureAdmin(c); err != nil {
		return err
	}

	tag, err := services.GetTagWithID(uint(id))
	if err != nil {
		return err
	}

	if err := services.DeleteTag(tag); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusOK)
}
