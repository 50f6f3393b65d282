package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"medical-triage-be/internal/dto"
	"medical-triage-be/internal/pkg/serverutils"
	"medical-triage-be/internal/service"
)

type ITriageController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
}

type triageController struct {
	triageService service.ITriageService
}

func NewTriageController(triageService service.ITriageService) ITriageController {
	return &triageController{
		triageService: triageService,
	}
}

func (c *triageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/triage/v1")
	h.Post("/chat", c.Chat)
}

func (c *triageController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Text) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing text field")
	}

	res, err := c.triageService.Chat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
