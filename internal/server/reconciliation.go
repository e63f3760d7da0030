package server

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/campuslabs/feeflow/internal/importer"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// @Summary      Run Bulk Reconciliation
// @Description  Upload a spreadsheet of (uid, term, fee category) rows and reconcile them
// @Tags         reconciliation
// @Accept       multipart/form-data
// @Produce      json
// @Param        file        formData  file    true   "xlsx or csv artifact"
// @Param        session_id  formData  string  false  "progress session identifier"
// @Success      200  {object}  reconciledomain.BatchResult
// @Router       /v1/reconciliations [post]
func (s *Server) RunReconciliation(c *gin.Context) {
	actorID, ok := s.actorFromRequest(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		AbortWithError(c, newValidationError("file", "missing_file", "file is required"))
		return
	}

	sessionID := strings.TrimSpace(c.PostForm("session_id"))
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	tmp, err := os.CreateTemp(s.cfg.Reconcile.UploadDir, "reconcile-*"+ext)
	if err != nil {
		s.log.Error("create upload temp file", zap.Error(err))
		AbortWithError(c, err)
		return
	}
	tmp.Close()

	if err := c.SaveUploadedFile(fileHeader, tmp.Name()); err != nil {
		os.Remove(tmp.Name())
		s.log.Error("persist uploaded artifact", zap.Error(err))
		AbortWithError(c, err)
		return
	}

	// The engine owns the artifact from here and removes it on every exit
	// path.
	result, err := s.engine.RunArtifact(c.Request.Context(), tmp.Name(), actorID, sessionID)
	if err != nil {
		if errors.Is(err, importer.ErrUnsupportedFormat) {
			AbortWithError(c, newValidationError("file", "unsupported_format", err.Error()))
			return
		}
		s.log.Error("reconciliation batch aborted", zap.String("session_id", sessionID), zap.Error(err))
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result, "session_id": sessionID})
}

func (s *Server) actorFromRequest(c *gin.Context) (snowflake.ID, bool) {
	raw := strings.TrimSpace(c.GetHeader("X-Actor-ID"))
	if raw == "" {
		AbortWithError(c, newValidationError("actor", "missing_actor", "X-Actor-ID header is required"))
		return 0, false
	}
	actorID, err := snowflake.ParseString(raw)
	if err != nil {
		AbortWithError(c, newValidationError("actor", "invalid_actor", "X-Actor-ID must be a valid id"))
		return 0, false
	}
	return actorID, true
}
