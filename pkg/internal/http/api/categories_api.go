package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rowanlabs/inkwell/pkg/internal/http/exts"
	"github.com/rowanlabs/inkwell/pkg/internal/services"
)

func listCategory(c *fiber.Ctx) error {
	take := c.QueryInt("take", 50)
	offset := c.QueryInt("offset", 0)

	if probe := c.Query("probe"); len(probe) > 0 {
		items, err := services.SearchCategories(take, offset, probe)
		if err != nil {
			return err
		}
		return c.JSON(items)
	}

	items, err := services.ListCategoryWithPostCount(take, offset)
	if err != nil {
		return err
	}

	return c.JSON(items)
}

func listPopularCategory(c *fiber.Ctx) error {
	take := c.QueryInt("take", 10)

	items, err := services.ListPopularCategories(take)
	if err != nil {
		return err
	}

	return c.JSON(items)
}

func getCategory(c *fiber.Ctx) error {
	category, err := services.GetCategory(c.Params("category"))
	if err != nil {
		return err
	}

	return c.JSON(category)
}

func createCategory(c *fiber.Ctx) error {
	if _, err := exts.EnsureAdmin(c); err != nil {
		return err
	}

	var data struct {
		Name        string `json:"name" validate:"required,max=100"`
		Slug        string `json:"slug" validate:"omitempty,max=200,lowercase"`
		Description string `json:"description" validate:"max=500"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	category, err := services.NewCategory(data.Name, data.Slug, data.Description)
	if err != nil {
		return err
	}

	return c.JSON(category)
}

func editCategory(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("categoryId", 0)
	if _, err := exts.EnsureAdmin(c); err != nil {
		return err
	}

	var data struct {
		Name        string `json:"name" validate:"required,max=100"`
		Slug        string `json:"slug" validate:"omitempty,max=200,lowercase"`
		Description string `json:"description" validate:"max=500"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	category, err := services.GetCategoryWithID(uint(id))
	if err != nil {
		return err
	}

	category, err = services.EditCategory(category, data.Name, data.Slug, data.Description)
	if err != nil {
		return err
	}

	return c.JSON(category)
}

func deleteCategory(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("categoryId", 0)
	if _, err := exts.EnsureAdmin(c); err != nil {
		return err
	}

	category, err := services.GetCategoryWithID(uint(id))
	if err != nil {
		return err
	}

	if err := services.DeleteCategory(category); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusOK)
}
