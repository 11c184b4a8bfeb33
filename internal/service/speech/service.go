package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"

	speechmodel "github.com/careerlift/resume-coach/backend/internal/model/speech"
)

// ErrEmptyText rejects synthesis of empty or whitespace-only input
// before any network call is made.
var ErrEmptyText = errors.New("speech text is empty")

// Client is the low-level synthesis transport.
type Client interface {
	Synthesize(ctx context.Context, req *speechmodel.Request) (*speechmodel.Response, error)
}

// Service is the speech-synthesis capability consumed by the
// orchestrator.
type Service struct {
	config *speechmodel.Config
	client Client
}

// NewService creates the speech service backed by the Volcengine TTS
// client.
func NewService(config *speechmodel.Config) *Service {
	return &Service{
		config: config,
		client: NewVolcengineTTSClient(config),
	}
}

// NewServiceWithClient is NewService with an injectable transport.
func NewServiceWithClient(config *speechmodel.Config, client Client) *Service {
	return &Service{config: config, client: client}
}

// SynthesizeSpeech validates and runs one synthesis request.
func (s *Service) SynthesizeSpeech(ctx context.Context, req *speechmodel.Request) (*speechmodel.Response, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrEmptyText
	}
	return s.client.Synthesize(ctx, req)
}

// Synthesize is the convenience form returning raw audio bytes.
func (s *Service) Synthesize(ctx context.Context, sessionID, text string) ([]byte, error) {
	resp, err := s.SynthesizeSpeech(ctx, &speechmodel.Request{
		SessionID: sessionID,
		Text:      text,
	})
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}
	return resp.AudioData, nil
}
