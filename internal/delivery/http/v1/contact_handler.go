package v1

import (
	"net/http"

	"go-tutoring-backend/internal/delivery/http/response"
	"go-tutoring-backend/internal/domain"
	"go-tutoring-backend/pkg/apperror"
	"go-tutoring-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact route (public, rate limited).
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, rateLimit gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/contact", rateLimit, handler.SubmitContact)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Send an inquiry through the contact form. This is a public, rate-limited endpoint.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true  "Contact Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		details := validation.FormatValidationErrors(err)
		c.Error(apperror.BadRequest("入力内容に誤りがあります", details))
		return
	}

	result, err := h.contactUC.SubmitContact(c.Request.Context(), &req, c.ClientIP())
	if err != nil {
		c.Error(apperror.New(http.StatusInternalServerError, "送信に失敗しました。時間をおいて再度お試しください。", err))
		return
	}

	response.Success(c, http.StatusOK, result.Message, nil)
}
