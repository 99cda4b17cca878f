package handlers

import (
	"errors"
	"fmt"
	"log"

	"placeholder/internal/models"
	"placeholder/internal/repositories"
	"placeholder/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for the user directory.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app. The CRUD
// routes require the auth middleware; the posts/todos/albums compatibility
// sub-resources are deliberately unauthenticated.
func (h *UserHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	userRoutes := router.Group("/users")

	userRoutes.Get("/:id/posts", h.HandleSubResource)
	userRoutes.Get("/:id/todos", h.HandleSubResource)
	userRoutes.Get("/:id/albums", h.HandleSubResource)

	userRoutes.Get("/", auth, h.HandleList)
	userRoutes.Get("/:id", auth, h.HandleGet)
	userRoutes.Post("/", auth, h.HandleCreate)
	userRoutes.Put("/:id", auth, h.HandleReplace)
	userRoutes.Patch("/:id", auth, h.HandlePatch)
	userRoutes.Delete("/:id", auth, h.HandleDelete)
}

// HandleList retrieves users with skip/limit pagination.
func (h *UserHandler) HandleList(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)

	users, err := h.service.List(skip, limit)
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve users",
			"error":   err.Error(),
		})
	}
	return c.JSON(users)
}

// HandleGet retrieves a single user by its ID.
func (h *UserHandler) HandleGet(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return invalidIDResponse(c)
	}

	user, err := h.service.Get(id)
	if err != nil {
		return userErrorResponse(c, id, err, "retrieve")
	}
	return c.JSON(user)
}

// HandleCreate creates a new user with its caller-supplied ID.
func (h *UserHandler) HandleCreate(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		log.Printf("Error parsing create user request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(user); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.service.Create(&user); err != nil {
		log.Printf("Error creating user %d: %v", user.ID, err)
		// Duplicate id is 400 to match the reference API's wire contract.
		if errors.Is(err, repositories.ErrDuplicateID) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "User with this ID already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create user",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleReplace handles a full update. Fields absent from the body are left
// unchanged, matching the reference API.
func (h *UserHandler) HandleReplace(c *fiber.Ctx) error {
	return h.handleUpdate(c, h.service.Replace)
}

// HandlePatch handles a partial update.
func (h *UserHandler) HandlePatch(c *fiber.Ctx) error {
	return h.handleUpdate(c, h.service.Patch)
}

func (h *UserHandler) handleUpdate(c *fiber.Ctx, apply func(int, models.UserUpdate) (*models.User, error)) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return invalidIDResponse(c)
	}

	var update models.UserUpdate
	if err := c.BodyParser(&update); err != nil {
		log.Printf("Error parsing update request body for user %d: %v", id, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(update); err != nil {
		return validationErrorResponse(c, err)
	}

	user, err := apply(id, update)
	if err != nil {
		return userErrorResponse(c, id, err, "update")
	}
	return c.JSON(user)
}

// HandleDelete removes a user. The success response carries no body.
func (h *UserHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return invalidIDResponse(c)
	}

	if err := h.service.Delete(id); err != nil {
		return userErrorResponse(c, id, err, "delete")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleSubResource serves the posts/todos/albums compatibility stubs: the
// user must exist, but the relation is never modeled and the response is
// always an empty list.
func (h *UserHandler) HandleSubResource(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return invalidIDResponse(c)
	}

	if err := h.service.Exists(id); err != nil {
		return userErrorResponse(c, id, err, "retrieve")
	}
	return c.JSON([]interface{}{})
}

func invalidIDResponse(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "User id must be an integer",
	})
}

// userErrorResponse maps service errors for a user id to a status code.
func userErrorResponse(c *fiber.Ctx, id int, err error, action string) error {
	log.Printf("Error during %s for user %d: %v", action, id, err)
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": fmt.Sprintf("Could not %s user", action),
		"error":   err.Error(),
	})
}
