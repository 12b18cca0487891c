package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dfcastro/Flota-api/internal/application/dto"
)

// pageFromQuery lee limit/offset de la query string y normaliza valores fuera
// de rango antes de que lleguen a los stores.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	page.DefaultPage()
	return page
}
