package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"finance-api/internal/auth"
	"finance-api/internal/domain"
)

type exportResponse struct {
	Key          string     `json:"key"`
	Location     string     `json:"location,omitempty"`
	Size         int64      `json:"size"`
	LastModified *time.Time `json:"lastModified"`
	URL          string     `json:"url,omitempty"`
}

func toExportResponse(exp domain.Export) exportResponse {
	return exportResponse{
		Key:          exp.Key,
		Location:     exp.Location,
		Size:         exp.Size,
		LastModified: exp.LastModified,
		URL:          exp.URL,
	}
}

func (h *Handler) createExport(c *gin.Context) {
	if h.exports == nil {
		routeNotFound(c)
		return
	}

	id, _ := auth.IdentityFromContext(c.Request.Context())
	exp, err := h.exports.Export(c.Request.Context(), id.Username)
	if err != nil {
		h.internalError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Successfully exported transactions", toExportResponse(*exp))
}

func (h *Handler) listExports(c *gin.Context) {
	if h.exports == nil {
		routeNotFound(c)
		return
	}

	exports, err := h.exports.List(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return
	}

	resp := make([]exportResponse, 0, len(exports))
	for _, exp := range exports {
		resp = append(resp, toExportResponse(exp))
	}
	respond(c, http.StatusOK, "Successfully get exports", resp)
}
