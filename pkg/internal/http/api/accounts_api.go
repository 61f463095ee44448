package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rowanlabs/inkwell/pkg/internal/http/exts"
	"github.com/rowanlabs/inkwell/pkg/internal/services"
)

func createAccount(c *fiber.Ctx) error {
	var data struct {
		Name     string `json:"name" validate:"required,alphanum,min=3,max=32"`
		Nick     string `json:"nick" validate:"max=64"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8,max=72"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}
	if len(data.Nick) == 0 {
		data.Nick = data.Name
	}

	account, err := services.NewAccount(data.Name, data.Nick, data.Email, data.Password)
	if err != nil {
		return err
	}

	return c.JSON(account)
}

func createToken(c *fiber.Ctx) error {
	var data struct {
		Name     string `json:"name" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, token, err := services.AuthenticateAccount(data.Name, data.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		MaxAge:   int((24 * 60 * 60)),
		HTTPOnly: true,
	})

	return c.JSON(fiber.Map{
		"token":   token,
		"account": account,
	})
}

func getMyself(c *fiber.Ctx) error {
	user, err := exts.EnsureAuthenticated(c)
	if err != nil {
		return err
	}

	return c.JSON(user)
}

func setAccountRole(c *fiber.Ctx) error {
	if _, err := exts.EnsureAdmin(c); err != nil {
		return err
	}
	id, _ := c.ParamsInt("accountId", 0)

	var data struct {
		Role string `json:"role" validate:"required,oneof=reader author admin"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, err := services.SetAccountRole(uint(id), data.Role)
	if err != nil {
		return err
	}

	return c.JSON(account)
}

func listCommentByAccount(c *fiber.Ctx) error {
	take := c.QueryInt("take", 10)
	offset := c.QueryInt("offset", 0)
	id, _ := c.ParamsInt("accountId", 0)

	if _, err := services.GetAccountWithID(uint(id)); err != nil {
		return err
	}

	items, err := services.ListCommentByAccount(uint(id), take, offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"count": len(items),
		"data":  items,
	})
}
