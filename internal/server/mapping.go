package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

type updateMappingRequest struct {
	FeeGroupID string `json:"fee_group_id" binding:"required"`
}

// @Summary      Update Mapping Fee Group
// @Description  Repoint a fee-group/promotion mapping at another fee group and recalculate dependent payables
// @Tags         mapping
// @Accept       json
// @Produce      json
// @Param        id       path  string                true  "Mapping ID"
// @Param        request  body  updateMappingRequest  true  "New fee group"
// @Success      200  {object}  mappingdomain.FeeGroupPromotionMapping
// @Router       /v1/fee-group-mappings/{id} [patch]
func (s *Server) UpdateMappingFeeGroup(c *gin.Context) {
	actorID, ok := s.actorFromRequest(c)
	if !ok {
		return
	}

	mappingID, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid mapping id"))
		return
	}

	var req updateMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("fee_group_id", "invalid_body", "fee_group_id is required"))
		return
	}

	feeGroupID, err := snowflake.ParseString(strings.TrimSpace(req.FeeGroupID))
	if err != nil {
		AbortWithError(c, newValidationError("fee_group_id", "invalid_fee_group_id", "invalid fee group id"))
		return
	}

	mapping, err := s.mappings.UpdateFeeGroup(c.Request.Context(), mappingID, feeGroupID, actorID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if mapping == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "mapping_not_found"})
		return
	}

	respondData(c, mapping)
}
