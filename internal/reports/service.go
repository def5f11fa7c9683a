package reports

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/politreg/deputy-portal/internal/dto/request"
	"github.com/politreg/deputy-portal/internal/dto/response"
	"github.com/politreg/deputy-portal/internal/observability"
)

// Service renders a report, files it under the media directory and
// records the render in the log.
type Service struct {
	renderer *Renderer
	log      RenderLog
	mediaDir string
	baseURL  string
	logger   *zap.Logger
}

func NewService(cfg Config, renderer *Renderer, log RenderLog, logger *zap.Logger) *Service {
	return &Service{
		renderer: renderer,
		log:      log,
		mediaDir: cfg.MediaDir,
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		logger:   logger,
	}
}

// Render produces the PDF and returns the public link to it. Each file
// gets a fresh name so links never collide or overwrite.
func (s *Service) Render(ctx context.Context, userID int64, req *request.RenderReport) (*response.RenderedReportResponse, error) {
	if err := os.MkdirAll(s.mediaDir, 0o755); err != nil {
		return nil, fmt.Errorf("prepare media dir: %w", err)
	}

	fileName := fmt.Sprintf("report_%s.pdf", uuid.NewString())
	if err := s.renderer.Render(req, filepath.Join(s.mediaDir, fileName)); err != nil {
		s.logger.Error("Report rendering failed",
			zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("render report: %w", err)
	}

	link := fmt.Sprintf("%s/media/%s", s.baseURL, fileName)
	now := time.Now()
	err := s.log.Insert(ctx, &RenderedReport{
		UserID:    userID,
		Payload:   payloadDocument(req),
		FileName:  fileName,
		Link:      link,
		CreatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("record render: %w", err)
	}

	observability.RenderedReports.Inc()
	s.logger.Info("Report rendered",
		zap.Int64("user_id", userID),
		zap.String("file", fileName),
	)
	return &response.RenderedReportResponse{
		FileName:  fileName,
		Link:      link,
		CreatedAt: now,
	}, nil
}

// History returns the caller's past renders, newest first.
func (s *Service) History(ctx context.Context, userID int64) ([]RenderedReport, error) {
	return s.log.ListByUser(ctx, userID)
}

// payloadDocument flattens the request into the shape stored in the
// render log.
func payloadDocument(req *request.RenderReport) bson.M {
	sections := make([]bson.M, 0, len(req.Sections))
	for _, s := range req.Sections {
		sections = append(sections, bson.M{"heading": s.Heading, "body": s.Body})
	}
	return bson.M{
		"title":    req.Title,
		"period":   req.Period,
		"sections": sections,
	}
}
