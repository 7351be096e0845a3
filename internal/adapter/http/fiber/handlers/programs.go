package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/haven-wellness/concierge/internal/domain"
	"github.com/haven-wellness/concierge/internal/ports"
)

// ProgramHandler is the admin surface for the program catalog: the single
// source of truth for enrollment prices and checkout URLs.
type ProgramHandler struct {
	repo    ports.ProgramRepository
	catalog ports.Catalog
	log     *zap.Logger
}

func NewProgramHandler(repo ports.ProgramRepository, catalog ports.Catalog, log *zap.Logger) *ProgramHandler {
	return &ProgramHandler{
		repo:    repo,
		catalog: catalog,
		log:     log,
	}
}

func (h *ProgramHandler) List(c *fiber.Ctx) error {
	programs, err := h.repo.FindAll(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list programs")
	}
	return c.JSON(programs)
}

func (h *ProgramHandler) Get(c *fiber.Ctx) error {
	program, err := h.repo.FindByID(c.Context(), c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load program")
	}
	if program == nil {
		return fiber.NewError(fiber.StatusNotFound, "program not found")
	}
	return c.JSON(program)
}

func (h *ProgramHandler) Upsert(c *fiber.Ctx) error {
	var program domain.Program
	if err := c.BodyParser(&program); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if program.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Program name is required"})
	}
	switch program.EnrollmentMode {
	case domain.EnrollDirectCheckout, domain.EnrollClarityCallOnly, domain.EnrollHybrid:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown enrollment mode"})
	}

	if program.ID == "" {
		program.ID = uuid.NewString()
		program.CreatedAt = time.Now().UTC()
	}
	program.UpdatedAt = time.Now().UTC()

	if err := h.repo.Save(c.Context(), &program); err != nil {
		h.log.Error("failed to save program", zap.String("name", program.Name), zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "failed to save program")
	}

	// The classifier matches against the catalog snapshot; refresh so the
	// change is visible without waiting for the next tick.
	if err := h.catalog.Refresh(c.Context()); err != nil {
		h.log.Warn("catalog refresh after save failed", zap.Error(err))
	}

	return c.Status(fiber.StatusCreated).JSON(program)
}

func (h *ProgramHandler) Delete(c *fiber.Ctx) error {
	if err := h.repo.Delete(c.Context(), c.Params("id")); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete program")
	}
	if err := h.catalog.Refresh(c.Context()); err != nil {
		h.log.Warn("catalog refresh after delete failed", zap.Error(err))
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ProgramHandler) RefreshCatalog(c *fiber.Ctx) error {
	if err := h.catalog.Refresh(c.Context()); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "catalog refresh failed")
	}
	return c.JSON(fiber.Map{"status": "refreshed"})
}
