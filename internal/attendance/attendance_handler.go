package attendance

import (
	"net/http"
	"strconv"

	"go-vigilancia/internal/shared/apperror"
	"go-vigilancia/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const defaultToleranceMinutes = 15

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Import accepts a multipart upload under "file". Optional form/query
// fields: "year" (label year hint), "tolerance" (minutes, default 15),
// "verify" ("false" yields a parse-only run).
func (h *Handler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Missing file upload", nil)
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Could not open upload", nil)
		return
	}
	defer f.Close()

	opts := ImportOptions{
		ToleranceMinutes: defaultToleranceMinutes,
		Verify:           true,
	}
	if v := c.DefaultPostForm("year", c.Query("year")); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid year", nil)
			return
		}
		opts.YearHint = year
	}
	if v := c.DefaultPostForm("tolerance", c.Query("tolerance")); v != "" {
		tol, err := strconv.Atoi(v)
		if err != nil || tol < 0 {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid tolerance", nil)
			return
		}
		opts.ToleranceMinutes = tol
	}
	if v := c.DefaultPostForm("verify", c.Query("verify")); v == "false" {
		opts.Verify = false
	}

	resp, err := h.service.Import(c.Request.Context(), f, opts)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
