package server

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"sentiment-service/internal/analyzer"
	"sentiment-service/internal/config"
	"sentiment-service/internal/file_processor"
	"sentiment-service/internal/handler"
	"sentiment-service/internal/ml_client"
	"sentiment-service/internal/repository"
)

type Server struct {
	router *gin.Engine
	logger *zap.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, logger *zap.Logger, classifier *ml_client.Client) *Server {
	router := gin.Default()
	router.Use(RequestID())

	s := &Server{
		router: router,
		logger: logger,
	}

	s.setupRoutes(db, classifier)

	return s
}

func (s *Server) setupRoutes(db *sqlx.DB, classifier *ml_client.Client) {
	resultRepo := repository.NewSentimentResultRepository(db, s.logger)
	textAnalyzer := analyzer.NewAnalyzer(classifier, s.logger)
	processor := file_processor.NewProcessor(textAnalyzer, resultRepo, s.logger)

	sentimentHandler := handler.NewSentimentHandler(textAnalyzer, resultRepo, processor, s.logger)
	dataHandler := handler.NewDataHandler(resultRepo, s.logger)
	healthHandler := handler.NewHealthHandler(classifier, s.logger)

	s.router.GET("/health", healthHandler.Check)

	sentimentGroup := s.router.Group("/sentiment")
	{
		sentimentGroup.POST("/analyze_text", sentimentHandler.AnalyzeText)
		sentimentGroup.POST("/analyze_file", sentimentHandler.AnalyzeFile)
	}

	dataGroup := s.router.Group("/data")
	{
		dataGroup.GET("/results", dataHandler.GetResults)
		dataGroup.GET("/result/:id", dataHandler.GetResultByID)
		dataGroup.GET("/results/date", dataHandler.GetResultsByDate)
		dataGroup.GET("/results/stats", dataHandler.GetStats)
		dataGroup.GET("/results/export", dataHandler.ExportCSV)
		dataGroup.PUT("/validate/:id", dataHandler.ValidateResult)
	}
}

func (s *Server) Run(addr string) {
	s.logger.Info("Server starting", zap.String("addr", addr))
	if err := s.router.Run(addr); err != nil {
		s.logger.Fatal("Server failed to start", zap.Error(err))
	}
}
