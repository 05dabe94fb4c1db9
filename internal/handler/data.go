package handler

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sentiment-service/internal/repository"
)

type DataHandler interface {
	GetResults(c *gin.Context)
	GetResultByID(c *gin.Context)
	GetResultsByDate(c *gin.Context)
	GetStats(c *gin.Context)
	ExportCSV(c *gin.Context)
	ValidateResult(c *gin.Context)
}

type dataHandler struct {
	results repository.SentimentResultRepository
	logger  *zap.Logger
}

func NewDataHandler(results repository.SentimentResultRepository, logger *zap.Logger) DataHandler {
	return &dataHandler{results: results, logger: logger}
}

// GetResults handles GET /data/results
func (h *dataHandler) GetResults(c *gin.Context) {
	results, err := h.results.GetAll()
	if err != nil {
		h.logger.Error("Failed to get results", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve results"})
		return
	}

	c.JSON(http.StatusOK, results)
}

// GetResultByID handles GET /data/result/:id
func (h *dataHandler) GetResultByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid result ID"})
		return
	}

	result, err := h.results.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Result not found"})
			return
		}
		h.logger.Error("Failed to get result", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve result"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetResultsByDate handles GET /data/results/date?date=YYYY-MM-DD
func (h *dataHandler) GetResultsByDate(c *gin.Context) {
	day, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD."})
		return
	}

	results, err := h.results.GetByDate(day)
	if err != nil {
		h.logger.Error("Failed to get results by date", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve results"})
		return
	}

	c.JSON(http.StatusOK, results)
}

// GetStats handles GET /data/results/stats
func (h *dataHandler) GetStats(c *gin.Context) {
	stats, err := h.results.Stats()
	if err != nil {
		h.logger.Error("Failed to compute stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportCSV handles GET /data/results/export and streams every stored
// result as a CSV attachment.
func (h *dataHandler) ExportCSV(c *gin.Context) {
	results, err := h.results.GetAll()
	if err != nil {
		h.logger.Error("Failed to get results for export", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve results"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=sentiment_results.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	if err := writer.Write([]string{"id", "text", "result", "score", "true_result", "created_at"}); err != nil {
		h.logger.Error("Failed to write CSV header", zap.Error(err))
		return
	}

	for _, r := range results {
		trueResult := ""
		if r.TrueResult != nil {
			trueResult = *r.TrueResult
		}
		record := []string{
			strconv.FormatInt(r.ID, 10),
			r.Text,
			r.Result,
			strconv.FormatFloat(r.Score, 'f', -1, 64),
			trueResult,
			r.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			h.logger.Error("Failed to write CSV record", zap.Int64("id", r.ID), zap.Error(err))
			return
		}
	}
}

// ValidateResult handles PUT /data/validate/:id?true_result=...
func (h *dataHandler) ValidateResult(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid result ID"})
		return
	}

	trueResult := c.Query("true_result")
	if trueResult == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'true_result' is required"})
		return
	}

	result, err := h.results.UpdateTrueResult(id, trueResult)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Result not found"})
			return
		}
		h.logger.Error("Failed to update true result", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update result"})
		return
	}

	h.logger.Info("Result validated",
		zap.Int64("id", id),
		zap.String("true_result", trueResult))

	c.JSON(http.StatusOK, result)
}
