package handlers

import (
	"net/http"

	"github.com/aaronbarnaby/create-release-action/internal/models"
	"github.com/aaronbarnaby/create-release-action/internal/services"
	"github.com/gin-gonic/gin"
)

// ChangelogHandler renders changelog previews from posted commit records
type ChangelogHandler struct {
	classifierService *services.ClassifierService
}

func NewChangelogHandler(classifierService *services.ClassifierService) *ChangelogHandler {
	return &ChangelogHandler{
		classifierService: classifierService,
	}
}

type renderRequest struct {
	Commits           []*models.CommitRecord `json:"commits" binding:"required"`
	ContributorsStyle string                 `json:"contributors_style"`
}

// Render classifies the posted commit records and returns the rendered
// changelog body
func (h *ChangelogHandler) Render(c *gin.Context) {
	var req renderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	classification := h.classifierService.Classify(req.Commits)
	changelogService := services.NewChangelogService(services.ContributorStyle(req.ContributorsStyle))

	c.JSON(http.StatusOK, gin.H{
		"changelog":    changelogService.Render(classification),
		"commits":      classification.CommitCount(),
		"contributors": len(classification.Contributors),
	})
}
