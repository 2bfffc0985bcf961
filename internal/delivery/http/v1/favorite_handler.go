package v1

import (
	"net/http"

	"go-candidate-feed/internal/delivery/http/response"
	"go-candidate-feed/internal/domain"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	favoriteUC domain.FavoriteUsecase
}

// NewFavoriteHandler registers the favorites routes. mutationLimit guards PUT and DELETE.
func NewFavoriteHandler(protected *gin.RouterGroup, favoriteUC domain.FavoriteUsecase, mutationLimit gin.HandlerFunc) {
	handler := &FavoriteHandler{favoriteUC: favoriteUC}

	favorites := protected.Group("/favorites")
	{
		favorites.GET("", handler.List)
		favorites.GET("/profiles", handler.Profiles)
		favorites.PUT("/:candidateId", mutationLimit, handler.Add)
		favorites.DELETE("/:candidateId", mutationLimit, handler.Remove)
	}
}

// List godoc
// @Summary      Favorites
// @Description  The caller's favorite candidate references. Users without favorites get an empty list.
// @Tags         favorites
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.FavoritesList}
// @Failure      401  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /favorites [get]
// @Security     BearerAuth
func (h *FavoriteHandler) List(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	list, err := h.favoriteUC.GetFavorites(c, userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Favorites", list)
}

// Profiles godoc
// @Summary      Favorite profiles
// @Description  The caller's favorites resolved to candidate profiles, in favorites order
// @Tags         favorites
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.CandidateProfile}
// @Failure      401  {object}  response.Response
// @Router       /favorites/profiles [get]
// @Security     BearerAuth
func (h *FavoriteHandler) Profiles(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	profiles, err := h.favoriteUC.GetFavoriteProfiles(c, userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Favorite profiles", profiles)
}

// Add godoc
// @Summary      Add favorite
// @Description  Idempotent: adding an existing favorite changes nothing
// @Tags         favorites
// @Produce      json
// @Param        candidateId  path      string  true  "Candidate ID"
// @Success      200          {object}  response.Response
// @Failure      401          {object}  response.Response
// @Failure      429          {object}  response.Response
// @Failure      503          {object}  response.Response
// @Router       /favorites/{candidateId} [put]
// @Security     BearerAuth
func (h *FavoriteHandler) Add(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	candidateID := c.Param("candidateId")

	if err := h.favoriteUC.AddFavorite(c, userID, candidateID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Favorite added", gin.H{"uid": candidateID, "is_favorited": true})
}

// Remove godoc
// @Summary      Remove favorite
// @Description  Idempotent: removing an absent favorite changes nothing
// @Tags         favorites
// @Produce      json
// @Param        candidateId  path      string  true  "Candidate ID"
// @Success      200          {object}  response.Response
// @Failure      401          {object}  response.Response
// @Failure      429          {object}  response.Response
// @Failure      503          {object}  response.Response
// @Router       /favorites/{candidateId} [delete]
// @Security     BearerAuth
func (h *FavoriteHandler) Remove(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	candidateID := c.Param("candidateId")

	if err := h.favoriteUC.RemoveFavorite(c, userID, candidateID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Favorite removed", gin.H{"uid": candidateID, "is_favorited": false})
}
