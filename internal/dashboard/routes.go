package dashboard

import (
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nlowry/callwright/internal/analysis"
	"github.com/nlowry/callwright/internal/transcript"
)

// transcriptSummary is the list-view projection of a stored transcript.
type transcriptSummary struct {
	CallID       string `json:"call_id"`
	CallSID      string `json:"call_sid"`
	ScenarioID   int    `json:"scenario_id"`
	ScenarioName string `json:"scenario_name"`
	Timestamp    string `json:"timestamp"`
	Turns        int    `json:"turns"`
}

// registerRoutes sets up all dashboard routes on the Gin router.
func registerRoutes(router *gin.Engine, store *transcript.Store) {
	router.GET("/healthz", handleHealth())

	api := router.Group("/api")
	api.GET("/transcripts", handleTranscriptList(store))
	api.GET("/transcripts/:id", handleTranscriptDetail(store))
	api.GET("/findings", handleFindings(store))
}

func handleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func handleTranscriptList(store *transcript.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := store.LoadAll()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		summaries := make([]transcriptSummary, len(records))
		for i, r := range records {
			summaries[i] = transcriptSummary{
				CallID:       r.CallID,
				CallSID:      r.CallSID,
				ScenarioID:   r.ScenarioID,
				ScenarioName: r.ScenarioName,
				Timestamp:    r.Timestamp.Format(time.RFC3339),
				Turns:        len(r.Conversation),
			}
		}
		c.JSON(http.StatusOK, gin.H{"transcripts": summaries, "count": len(summaries)})
	}
}

func handleTranscriptDetail(store *transcript.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		record, err := store.Load(c.Param("id"))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				c.JSON(http.StatusNotFound, gin.H{"error": "transcript not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, record)
	}
}

// handleFindings scans all stored transcripts on demand. The scan is cheap
// enough that no caching is needed at this scale.
func handleFindings(store *transcript.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := store.LoadAll()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		findings := analysis.Scan(records)
		if findings == nil {
			findings = []analysis.Finding{}
		}
		c.JSON(http.StatusOK, gin.H{
			"transcripts": len(records),
			"findings":    findings,
			"count":       len(findings),
		})
	}
}
