package v1

import (
	"errors"
	"net/http"

	"go-tutoring-backend/internal/delivery/http/response"
	"go-tutoring-backend/internal/domain"
	"go-tutoring-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	submissionRepo domain.SubmissionRepository
}

// UpdateStatusRequest is the body of the status transition endpoint.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=new read replied"`
}

// NewAdminHandler registers the admin submission routes (bearer token
// protected).
func NewAdminHandler(admin *gin.RouterGroup, submissionRepo domain.SubmissionRepository) {
	handler := &AdminHandler{
		submissionRepo: submissionRepo,
	}

	admin.GET("/submissions", handler.ListSubmissions)
	admin.PATCH("/submissions/:id/status", handler.UpdateStatus)
}

// ListSubmissions godoc
// @Summary      List Submissions
// @Description  Full submission log, newest first.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]domain.StoredSubmission}
// @Failure      401  {object}  response.Response
// @Router       /admin/submissions [get]
func (h *AdminHandler) ListSubmissions(c *gin.Context) {
	submissions, err := h.submissionRepo.List(c.Request.Context())
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	response.Success(c, http.StatusOK, "OK", submissions)
}

// UpdateStatus godoc
// @Summary      Update Submission Status
// @Description  Advance a submission's lifecycle status (new, read, replied).
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string               true  "Submission ID"
// @Param        status  body      UpdateStatusRequest  true  "New Status"
// @Success      200     {object}  response.Response{data=domain.StoredSubmission}
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /admin/submissions/{id}/status [patch]
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("ステータスの値が正しくありません", nil))
		return
	}

	updated, err := h.submissionRepo.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, domain.ErrSubmissionNotFound) {
			c.Error(apperror.NotFound("お問い合わせが見つかりません"))
			return
		}
		c.Error(apperror.Internal(err))
		return
	}

	response.Success(c, http.StatusOK, "ステータスを更新しました", updated)
}
