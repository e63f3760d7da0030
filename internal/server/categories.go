package server

import (
	"github.com/gin-gonic/gin"
)

// @Summary      List Fee Categories
// @Description  List fee categories available for reconciliation uploads
// @Tags         masterdata
// @Produce      json
// @Success      200  {array}   masterdomain.FeeCategory
// @Router       /v1/fee-categories [get]
func (s *Server) ListFeeCategories(c *gin.Context) {
	categories, err := s.resolver.ListCategories(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, categories)
}
