package handlers

import (
	"github.com/amrshakerr/editor_portfolio/database"
	"github.com/amrshakerr/editor_portfolio/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProjectRequest struct {
	Title         string `json:"title" validate:"required,max=255"`
	TitleAr       string `json:"title_ar" validate:"max=255"`
	Description   string `json:"description"`
	DescriptionAr string `json:"description_ar"`
	MediaURL      string `json:"media_url" validate:"omitempty,url"`
	SortOrder     int    `json:"sort_order"`
}

func GetProjects(c *fiber.Ctx) error {
	var projects []models.Project
	if err := database.DB.Order("sort_order, created_at DESC").Find(&projects).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch projects"})
	}
	return c.JSON(projects)
}

func CreateProject(c *fiber.Ctx) error {
	var req ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	project := models.Project{
		Title:         req.Title,
		TitleAr:       req.TitleAr,
		Description:   req.Description,
		DescriptionAr: req.DescriptionAr,
		MediaURL:      req.MediaURL,
		SortOrder:     req.SortOrder,
	}

	if err := database.DB.Create(&project).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create project"})
	}

	return c.Status(fiber.StatusCreated).JSON(project)
}

func UpdateProject(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
	}

	var project models.Project
	if err := database.DB.First(&project, "id = ?", projectID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
	}

	var req ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	project.Title = req.Title
	project.TitleAr = req.TitleAr
	project.Description = req.Description
	project.DescriptionAr = req.DescriptionAr
	project.MediaURL = req.MediaURL
	project.SortOrder = req.SortOrder

	if err := database.DB.Save(&project).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update project"})
	}

	return c.JSON(project)
}

func DeleteProject(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
	}

	result := database.DB.Delete(&models.Project{}, "id = ?", projectID)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete project"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
