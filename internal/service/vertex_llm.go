package service

import (
	"context"
	"fmt"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/option"
)

// VertexLLM implements the TextGenerator interface using Google's Vertex AI.
type VertexLLM struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewVertexLLM creates a new Vertex AI text generation client.
// credentialsFile may be empty, in which case application-default
// credentials are used. The model is configured for a single candidate
// at the given temperature; analysis wants reproducible output, so run
// it cold (the default is 0.1).
func NewVertexLLM(ctx context.Context, projectID, location, modelName string, temperature float32, credentialsFile string) (*VertexLLM, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := genai.NewClient(ctx, projectID, location, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetCandidateCount(1)

	return &VertexLLM{
		client: client,
		model:  model,
	}, nil
}

// GenerateText generates a response using the Vertex AI model.
func (l *VertexLLM) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := l.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	return textFromResponse(resp)
}

// textFromResponse pulls the first candidate's text out of resp.
// Safety-blocked generations come back with a candidate that has nil
// content or no parts, so every level is checked before indexing; the
// caller's retry loop absorbs the resulting error.
func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no response generated")
	}

	cand := resp.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return "", fmt.Errorf("response candidate has no content")
	}

	text, ok := cand.Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type")
	}
	return string(text), nil
}

// Close closes the Vertex AI client.
func (l *VertexLLM) Close() error {
	return l.client.Close()
}
