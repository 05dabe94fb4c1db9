package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sentiment-service/internal/analyzer"
	"sentiment-service/internal/file_processor"
	"sentiment-service/internal/repository"
)

type SentimentHandler interface {
	AnalyzeText(c *gin.Context)
	AnalyzeFile(c *gin.Context)
}

type sentimentHandler struct {
	analyzer  *analyzer.Analyzer
	results   repository.SentimentResultRepository
	processor *file_processor.Processor
	logger    *zap.Logger
}

func NewSentimentHandler(analyzer *analyzer.Analyzer, results repository.SentimentResultRepository, processor *file_processor.Processor, logger *zap.Logger) SentimentHandler {
	return &sentimentHandler{
		analyzer:  analyzer,
		results:   results,
		processor: processor,
		logger:    logger,
	}
}

// AnalyzeText handles POST /sentiment/analyze_text. The full ranked
// prediction list goes back to the caller; the top prediction and the
// normalized text get persisted.
func (h *sentimentHandler) AnalyzeText(c *gin.Context) {
	text := c.PostForm("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Form field 'text' is required"})
		return
	}

	analysis, err := h.analyzer.Analyze(c.Request.Context(), text)
	if err != nil {
		h.logger.Error("Model inference failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Error during model inference: %v", err)})
		return
	}

	saved, err := h.results.Create(analysis.Text, analysis.Label, analysis.Score)
	if err != nil {
		h.logger.Error("Failed to save sentiment result", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save result"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": analysis.Predictions,
		"db_id":  saved.ID,
	})
}

// AnalyzeFile handles POST /sentiment/analyze_file. The response carries
// one entry per input row in file order, errored rows included.
func (h *sentimentHandler) AnalyzeFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Multipart field 'file' is required"})
		return
	}

	column := c.PostForm("column")
	if column == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Form field 'column' is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Error reading file: %v", err)})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("Failed to read uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Error reading file: %v", err)})
		return
	}

	entries, err := h.processor.Process(c.Request.Context(), data, fileHeader.Filename, column)
	if err != nil {
		var parseErr *file_processor.ParseError
		switch {
		case errors.Is(err, file_processor.ErrUnsupportedFormat):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type. Please upload a CSV or XLS/XLSX file."})
		case errors.Is(err, file_processor.ErrColumnNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Column '%s' not found in the file.", column)})
		case errors.As(err, &parseErr):
			h.logger.Error("Failed to parse uploaded file",
				zap.String("filename", fileHeader.Filename),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Error reading file: %v", parseErr.Err)})
		default:
			h.logger.Error("Batch processing failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process file"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": entries})
}
