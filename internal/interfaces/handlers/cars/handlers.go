package cars

import (
	"errors"
	"strconv"

	carsvc "autovad-backend/internal/application/cars"
	socialsvc "autovad-backend/internal/application/social"
	"autovad-backend/internal/pkg/response"
	"autovad-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	defaultLimit = 20
	maxLimit     = 50

	listCacheControl   = "public, s-maxage=60, stale-while-revalidate=300"
	detailCacheControl = "public, s-maxage=300, stale-while-revalidate=600"
)

type Handlers struct {
	Cars   *carsvc.Service
	Social *socialsvc.Service
}

// GET /api/v1/cars — { success, data, count, totalCount, page, limit, hasMore }
func (h *Handlers) ListCars(c *fiber.Ctx) error {
	search := c.Query("query")
	if !validation.IsValidSearchQuery(search) {
		return response.APIError(c, 400, "Invalid query")
	}

	page, ok := intQuery(c, "page", 1)
	if !ok || page < 1 {
		return response.APIError(c, 400, "Invalid pagination parameters")
	}
	limit, ok := intQuery(c, "limit", defaultLimit)
	if !ok || limit < 1 || limit > maxLimit {
		return response.APIError(c, 400, "Invalid pagination parameters")
	}

	result, err := h.Cars.List(c.Context(), carsvc.ListParams{
		Search: search,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		log.Error().Err(err).Str("query", search).Msg("car list failed")
		return response.APIError(c, 500, "Internal server error")
	}

	c.Set("Cache-Control", listCacheControl)
	return c.JSON(fiber.Map{
		"success":    true,
		"data":       result.Cars,
		"count":      len(result.Cars),
		"totalCount": result.TotalCount,
		"page":       result.Page,
		"limit":      result.Limit,
		"hasMore":    result.HasMore,
	})
}

// GET /api/v1/cars/:id
func (h *Handlers) GetCar(c *fiber.Ctx) error {
	id := c.Params("id")
	if !validation.IsValidCarID(id) {
		return response.APIError(c, 400, "Invalid car id format")
	}

	car, err := h.Cars.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, carsvc.ErrCarNotFound) {
			return response.APIError(c, 404, "Car not found")
		}
		log.Error().Err(err).Str("car_id", id).Msg("car fetch failed")
		return response.APIError(c, 500, "Internal server error")
	}

	c.Set("Cache-Control", detailCacheControl)
	return c.JSON(fiber.Map{"success": true, "data": car})
}

// POST /api/v1/cars/:id/view — bumps the view counter, no auth.
func (h *Handlers) RecordView(c *fiber.Ctx) error {
	carID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.APIError(c, 400, "Invalid car id format")
	}

	if err := h.Social.IncrementViews(c.Context(), carID); err != nil {
		if errors.Is(err, socialsvc.ErrCarNotFound) {
			return response.APIError(c, 404, "Car not found")
		}
		log.Error().Err(err).Str("car_id", carID.String()).Msg("view increment failed")
		return response.APIError(c, 500, "Internal server error")
	}
	return c.JSON(fiber.Map{"success": true})
}

// POST /api/v1/cars/:id/like — requires auth.
func (h *Handlers) LikeCar(c *fiber.Ctx) error {
	carID, userID, err := likeParams(c)
	if err != nil {
		return response.APIError(c, 400, err.Error())
	}

	if err := h.Social.Like(c.Context(), carID, userID); err != nil {
		switch {
		case errors.Is(err, socialsvc.ErrCarNotFound):
			return response.APIError(c, 404, "Car not found")
		case errors.Is(err, socialsvc.ErrAlreadyLiked):
			return response.APIError(c, 409, "Already liked")
		default:
			log.Error().Err(err).Str("car_id", carID.String()).Msg("like failed")
			return response.APIError(c, 500, "Internal server error")
		}
	}
	return c.JSON(fiber.Map{"success": true})
}

// DELETE /api/v1/cars/:id/like — requires auth.
func (h *Handlers) UnlikeCar(c *fiber.Ctx) error {
	carID, userID, err := likeParams(c)
	if err != nil {
		return response.APIError(c, 400, err.Error())
	}

	if err := h.Social.Unlike(c.Context(), carID, userID); err != nil {
		switch {
		case errors.Is(err, socialsvc.ErrNotLiked):
			return response.APIError(c, 404, "Not liked")
		default:
			log.Error().Err(err).Str("car_id", carID.String()).Msg("unlike failed")
			return response.APIError(c, 500, "Internal server error")
		}
	}
	return c.JSON(fiber.Map{"success": true})
}

func likeParams(c *fiber.Ctx) (carID, userID uuid.UUID, err error) {
	carID, err = uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, errors.New("Invalid car id format")
	}
	user, _ := c.Locals("user").(map[string]interface{})
	uid, _ := user["user_id"].(string)
	userID, err = uuid.Parse(uid)
	if err != nil {
		return uuid.Nil, uuid.Nil, errors.New("Invalid session user")
	}
	return carID, userID, nil
}

// intQuery parses an integer query param, returning def when absent.
func intQuery(c *fiber.Ctx, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
