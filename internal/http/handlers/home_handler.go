package handlers

import (
	"github.com/gofiber/fiber/v2"

	"gizmocash/internal/domain"
	applog "gizmocash/internal/log"
	"gizmocash/internal/repos"
)

type HomeHandler struct {
	Reviews *repos.ReviewRepo
}

// Home is the landing page: the three sell entry points plus approved
// customer reviews.
func (h *HomeHandler) Home(c *fiber.Ctx) error {
	reviews, err := h.Reviews.ListApproved(6)
	if err != nil {
		applog.Error(c, "home.reviews.fetch", err, nil)
		reviews = nil
	}
	return render(c, "home", fiber.Map{
		"Reviews": reviews,
		"Categories": []domain.Category{
			domain.CategoryPhone, domain.CategoryLaptop, domain.CategoryTablet,
		},
	})
}
