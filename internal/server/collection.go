package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	collectiondomain "github.com/solidaria/backoffice/internal/collection/domain"
)

const dateParam = "2006-01-02"

// PreviewCollections returns the operator worksheet: eligible donors with
// status and preselection, exclusions with reasons, and amount warnings.
func (s *Server) PreviewCollections(c *gin.Context) {
	date, err := parseDate(c.Query("collection_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid collection_date, expected YYYY-MM-DD"})
		return
	}

	preview, err := s.collectionSvc.Preview(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": preview})
}

type exportRequest struct {
	BankAccountID  string   `json:"bank_account_id"`
	CollectionDate string   `json:"collection_date" binding:"required"`
	DonorIDs       []string `json:"donor_ids" binding:"required"`
	CreatedBy      string   `json:"created_by"`
}

// ExportCollectionRun builds, validates and serializes a run. On success
// the response body is the pain.008 XML; persistence outcome travels in
// response headers so a recording failure never hides the file.
func (s *Server) ExportCollectionRun(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parseDate(req.CollectionDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid collection_date, expected YYYY-MM-DD"})
		return
	}

	donorIDs := make([]snowflake.ID, 0, len(req.DonorIDs))
	for _, raw := range req.DonorIDs {
		id, err := snowflake.ParseString(strings.TrimSpace(raw))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid donor id: " + raw})
			return
		}
		donorIDs = append(donorIDs, id)
	}

	build := collectiondomain.BuildRequest{
		CollectionDate: date,
		DonorIDs:       donorIDs,
		CreatedBy:      req.CreatedBy,
	}
	if req.BankAccountID != "" {
		accountID, err := snowflake.ParseString(req.BankAccountID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bank_account_id"})
			return
		}
		build.BankAccountID = accountID
	}

	result, err := s.collectionSvc.Export(c.Request.Context(), build)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, collectiondomain.ErrNoBankAccount) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.Header("X-Run-Id", result.Run.ID.String())
	c.Header("X-Message-Id", result.Run.MessageID)
	if result.Persistence != nil {
		c.Header("X-Persistence-Warning", result.Persistence.Error())
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, "application/xml; charset=utf-8", result.File)
}

func (s *Server) ListCollectionRuns(c *gin.Context) {
	runs, err := s.collectionSvc.ListRuns(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": runs})
}

func (s *Server) GetCollectionRun(c *gin.Context) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	run, err := s.collectionSvc.GetRun(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, collectiondomain.ErrRunNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": run})
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse(dateParam, strings.TrimSpace(raw))
}
