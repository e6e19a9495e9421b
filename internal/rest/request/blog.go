package request

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/wakostech/blog-backend/domain"
)

// The category rule is registered here so every consumer of these DTOs
// gets it, not just the server binary.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("category", categoryValidator); err != nil {
			panic(err)
		}
	}
}

// categoryValidator rejects values outside the fixed category set. Empty is
// allowed where the field is optional.
func categoryValidator(fl validator.FieldLevel) bool {
	return domain.Category(fl.Field().String()).Valid()
}

type Blog struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Image       string `json:"image" binding:"required"`
	Category    string `json:"category" binding:"omitempty,category"`
	Excerpt     string `json:"excerpt" binding:"omitempty,max=200"`
	Featured    bool   `json:"featured"`
}

// ToDomain: Request -> Domain
func (r *Blog) ToDomain() domain.Blog {
	return domain.Blog{
		Title:       r.Title,
		Description: r.Description,
		Image:       r.Image,
		Category:    domain.Category(r.Category),
		Excerpt:     r.Excerpt,
		Featured:    r.Featured,
	}
}

// BlogUpdate carries a partial update; empty fields keep their value.
type BlogUpdate struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category" binding:"omitempty,category"`
	Excerpt     string `json:"excerpt" binding:"omitempty,max=200"`
}

func (r *BlogUpdate) ToPatch() domain.BlogPatch {
	return domain.BlogPatch{
		Title:       r.Title,
		Description: r.Description,
		Image:       r.Image,
		Category:    domain.Category(r.Category),
		Excerpt:     r.Excerpt,
	}
}
