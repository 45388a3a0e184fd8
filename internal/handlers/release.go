package handlers

import (
	"net/http"

	"github.com/aaronbarnaby/create-release-action/internal/repositories"
	"github.com/gin-gonic/gin"
)

// ReleaseHandler exposes the stored release history
type ReleaseHandler struct {
	releaseRepo *repositories.ReleaseRepository
}

func NewReleaseHandler(releaseRepo *repositories.ReleaseRepository) *ReleaseHandler {
	return &ReleaseHandler{
		releaseRepo: releaseRepo,
	}
}

// ListReleases returns the release history for a repository, newest first
func (h *ReleaseHandler) ListReleases(c *gin.Context) {
	repository := c.Query("repository")
	if repository == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "repository query parameter is required"})
		return
	}

	releases, err := h.releaseRepo.ListByRepository(repository)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"releases": releases})
}

// GetRelease returns a single stored release by ID
func (h *ReleaseHandler) GetRelease(c *gin.Context) {
	release, err := h.releaseRepo.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if release == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "release not found"})
		return
	}

	c.JSON(http.StatusOK, release)
}

// DeleteRelease removes a stored release from the history
func (h *ReleaseHandler) DeleteRelease(c *gin.Context) {
	release, err := h.releaseRepo.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if release == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "release not found"})
		return
	}

	if err := h.releaseRepo.Delete(release.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
