package ai

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/theplug/theplug/internal/models"
)

const analysisPrompt = `You are an expert video analyzer. Analyze the uploaded video and respond to this query:

Query: %s

Provide a comprehensive, insightful response that includes:
1. Direct analysis of the video content
2. Key insights and observations
3. Any supplementary context that would be helpful
4. Actionable takeaways

Be conversational and engaging while being thorough and accurate.
Speak casually, humble and naturally.
Keep responses short and concise.`

// fileBackend is the slice of the Gemini API the analyzer needs. The
// indirection keeps the status-polling loop testable without network.
type fileBackend interface {
	Upload(ctx context.Context, path, mimeType string) (*genai.File, error)
	Get(ctx context.Context, name string) (*genai.File, error)
	Generate(ctx context.Context, file *genai.File, prompt string) (string, error)
}

// Gemini uploads the session artifact through the Files API, waits for it
// to become ACTIVE and then asks the model the user's question.
type Gemini struct {
	backend        fileBackend
	pollInterval   time.Duration
	processTimeout time.Duration
}

func NewGemini(ctx context.Context, config *Config) (*Gemini, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("an API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := config.Model
	if model == "" {
		model = NewConfig().Model
	}
	pollInterval := config.PollInterval
	if pollInterval == 0 {
		pollInterval = NewConfig().PollInterval
	}
	processTimeout := config.ProcessTimeout
	if processTimeout == 0 {
		processTimeout = NewConfig().ProcessTimeout
	}

	log.Printf("Gemini analysis enabled (model: %s)", model)

	return &Gemini{
		backend:        &genaiBackend{client: client, model: model},
		pollInterval:   pollInterval,
		processTimeout: processTimeout,
	}, nil
}

func (g *Gemini) AskVideo(ctx context.Context, videoPath, question string) (string, error) {
	file, err := g.backend.Upload(ctx, videoPath, videoMIME(videoPath))
	if err != nil {
		return "", fmt.Errorf("uploading video: %w", err)
	}

	file, err = g.waitForActive(ctx, file)
	if err != nil {
		return "", err
	}

	answer, err := g.backend.Generate(ctx, file, fmt.Sprintf(analysisPrompt, question))
	if err != nil {
		return "", fmt.Errorf("generating answer: %w", err)
	}
	return answer, nil
}

// waitForActive polls the file's processing status at a fixed interval.
// The model is never called for a file that did not reach ACTIVE within
// the ceiling.
func (g *Gemini) waitForActive(ctx context.Context, file *genai.File) (*genai.File, error) {
	deadline := time.Now().Add(g.processTimeout)
	for file.State != genai.FileStateActive {
		if file.State == genai.FileStateFailed {
			return nil, fmt.Errorf("remote processing failed for %s", file.Name)
		}
		if !time.Now().Before(deadline) {
			return nil, models.ErrProcessingTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(g.pollInterval):
		}

		var err error
		file, err = g.backend.Get(ctx, file.Name)
		if err != nil {
			return nil, fmt.Errorf("checking processing status: %w", err)
		}
	}
	return file, nil
}

type genaiBackend struct {
	client *genai.Client
	model  string
}

func (b *genaiBackend) Upload(ctx context.Context, path, mimeType string) (*genai.File, error) {
	return b.client.Files.UploadFromPath(ctx, path, &genai.UploadFileConfig{
		MIMEType: mimeType,
	})
}

func (b *genaiBackend) Get(ctx context.Context, name string) (*genai.File, error) {
	return b.client.Files.Get(ctx, name, nil)
}

func (b *genaiBackend) Generate(ctx context.Context, file *genai.File, prompt string) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromURI(file.URI, file.MIMEType),
		genai.NewPartFromText(prompt),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	resp, err := b.client.Models.GenerateContent(ctx, b.model, contents, nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// videoMIME covers the extensions the upload form accepts; everything
// else is treated as mp4.
func videoMIME(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mov":
		return "video/quicktime"
	case ".avi":
		return "video/x-msvideo"
	default:
		return "video/mp4"
	}
}
