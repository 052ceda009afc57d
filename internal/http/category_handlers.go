package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finance-api/internal/domain"
)

type categoryResponse struct {
	ID         int64                 `json:"id"`
	Name       string                `json:"name"`
	Categories []subcategoryResponse `json:"categories"`
}

type subcategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (h *Handler) listCategories(c *gin.Context) {
	tree, err := h.categories.ListTree(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return
	}

	resp := make([]categoryResponse, 0, len(tree))
	for _, parent := range tree {
		resp = append(resp, toCategoryResponse(parent))
	}
	respond(c, http.StatusOK, "Successfully get categories", resp)
}

func toCategoryResponse(cat domain.Category) categoryResponse {
	children := make([]subcategoryResponse, 0, len(cat.Children))
	for _, child := range cat.Children {
		children = append(children, subcategoryResponse{ID: child.ID, Name: child.Name})
	}
	return categoryResponse{ID: cat.ID, Name: cat.Name, Categories: children}
}
