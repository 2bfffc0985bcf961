package v1

import (
	"net/http"

	"go-candidate-feed/internal/delivery/http/response"
	"go-candidate-feed/internal/domain"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryUC domain.CategoryUsecase
}

func NewCategoryHandler(public *gin.RouterGroup, categoryUC domain.CategoryUsecase) {
	handler := &CategoryHandler{categoryUC: categoryUC}
	public.GET("/categories", handler.List)
}

// List godoc
// @Summary      Job categories
// @Description  Categories a candidate can be tagged with, and the job titles in each
// @Tags         categories
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.JobCategory}
// @Router       /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	response.Success(c, http.StatusOK, "Categories", h.categoryUC.List(c))
}
