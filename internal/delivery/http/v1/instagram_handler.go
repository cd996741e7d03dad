package v1

import (
	"net/http"

	"go-tutoring-backend/internal/delivery/http/response"
	"go-tutoring-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type InstagramHandler struct {
	instagramUC domain.InstagramUsecase
}

// NewInstagramHandler registers the showcase feed route (public).
func NewInstagramHandler(public *gin.RouterGroup, instagramUC domain.InstagramUsecase) {
	handler := &InstagramHandler{
		instagramUC: instagramUC,
	}

	public.GET("/instagram", handler.RecentMedia)
}

// RecentMedia godoc
// @Summary      Instagram Showcase Feed
// @Description  Recent media from the lesson Instagram account, cached for 30 minutes. Always returns 200; provider failures degrade to an empty list.
// @Tags         instagram
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.InstagramMedia}
// @Router       /instagram [get]
func (h *InstagramHandler) RecentMedia(c *gin.Context) {
	media := h.instagramUC.RecentMedia(c.Request.Context())
	response.Success(c, http.StatusOK, "OK", media)
}
