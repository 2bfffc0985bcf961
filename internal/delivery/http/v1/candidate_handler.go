package v1

import (
	"net/http"
	"strconv"
	"strings"

	"go-candidate-feed/internal/delivery/http/response"
	"go-candidate-feed/internal/domain"
	"go-candidate-feed/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	feedUC      domain.FeedUsecase
	candidateUC domain.CandidateUsecase
}

func NewCandidateHandler(public, protected *gin.RouterGroup, feedUC domain.FeedUsecase, candidateUC domain.CandidateUsecase) {
	handler := &CandidateHandler{feedUC: feedUC, candidateUC: candidateUC}

	own := protected.Group("/candidates/me")
	{
		own.GET("", handler.GetOwnResume)
		own.PUT("", handler.SaveResume)
		own.PUT("/categories", handler.SetCategories)
	}

	candidates := public.Group("/candidates")
	{
		candidates.GET("", handler.List)
		candidates.GET("/:id", handler.GetDetails)
	}
}

type SetCategoriesRequest struct {
	Categories []string `json:"categories" binding:"required"`
}

// List godoc
// @Summary      Candidate feed
// @Description  One page of candidate profiles. Recent first by default, role prefix search with q, or one category. Pass the returned next_cursor to get the following page.
// @Tags         candidates
// @Produce      json
// @Param        limit     query  int     false  "Page size"
// @Param        cursor    query  string  false  "next_cursor from the previous page"
// @Param        q         query  string  false  "Role prefix"
// @Param        category  query  string  false  "Category tag"
// @Success      200  {object}  response.Response{data=domain.FeedPage}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /candidates [get]
func (h *CandidateHandler) List(c *gin.Context) {
	q, err := parseFeedQuery(c)
	if err != nil {
		c.Error(err)
		return
	}

	page, err := h.feedUC.FetchPage(c, q)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidates", page)
}

func parseFeedQuery(c *gin.Context) (domain.FeedQuery, error) {
	var q domain.FeedQuery

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return q, apperror.BadRequest("limit must be a number")
		}
		q.PageSize = limit
	}
	q.Cursor = c.Query("cursor")

	term := c.Query("q")
	category := c.Query("category")
	switch {
	case strings.TrimSpace(term) != "" && strings.TrimSpace(category) != "":
		return q, apperror.BadRequest("q and category cannot be combined")
	case strings.TrimSpace(category) != "":
		q.Filter = domain.CategoryFilter(category)
	default:
		q.Filter = domain.SearchFilter(term)
	}
	return q, nil
}

// GetDetails godoc
// @Summary      Candidate resume
// @Description  The full public resume of one candidate
// @Tags         candidates
// @Produce      json
// @Param        id   path      string  true  "Candidate ID"
// @Success      200  {object}  response.Response{data=domain.Resume}
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id} [get]
func (h *CandidateHandler) GetDetails(c *gin.Context) {
	resume, err := h.candidateUC.GetCandidate(c, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate", resume)
}

// GetOwnResume godoc
// @Summary      Own resume
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Resume}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/me [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetOwnResume(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	// Pass 'c' directly: gin.Context carries the auth keys.
	resume, err := h.candidateUC.GetOwnResume(c, userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume", resume)
}

// SaveResume godoc
// @Summary      Save own resume
// @Description  Creates or replaces the caller's resume. created_at is kept from the first save.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        resume  body      domain.Resume  true  "Resume"
// @Success      200     {object}  response.Response{data=domain.Resume}
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Router       /candidates/me [put]
// @Security     BearerAuth
func (h *CandidateHandler) SaveResume(c *gin.Context) {
	var resume domain.Resume
	if err := c.ShouldBindJSON(&resume); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	saved, err := h.candidateUC.SaveResume(c, &resume)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume saved", saved)
}

// SetCategories godoc
// @Summary      Set own categories
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        body  body      SetCategoriesRequest  true  "Categories"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /candidates/me/categories [put]
// @Security     BearerAuth
func (h *CandidateHandler) SetCategories(c *gin.Context) {
	var req SetCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("categories is required"))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	if err := h.candidateUC.SetCategories(c, userID, req.Categories); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Categories updated", gin.H{"categories": req.Categories})
}
