package pipeline

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"gameforge/internal/llm"
)

// DefaultImageStyle is applied when a preview request leaves Style empty.
const DefaultImageStyle = "high-fidelity 3D realistic"

// PreviewImageRequest describes one standalone preview frame. No
// project is loaded or persisted.
type PreviewImageRequest struct {
	Genre                string
	SceneDescription     string
	CharacterDescription string
	Style                string
}

// VideoSceneRequest describes one frame of a gameplay sequence. The
// sequence position is encoded into the prompt for visual continuity.
type VideoSceneRequest struct {
	Genre                string
	SceneDescription     string
	CharacterDescription string
	Action               string
	SceneNumber          int
	TotalScenes          int
	UserPrompt           string
}

// ImageResult is the envelope both image operations return. "Backend
// produced no image" is a normal outcome with Success false and the
// backend's text commentary attached, distinct from an adapter error.
type ImageResult struct {
	Success      bool   `json:"success"`
	ImageData    string `json:"image_data,omitempty"`
	MIMEType     string `json:"mime_type,omitempty"`
	TextResponse string `json:"text_response,omitempty"`
	Error        string `json:"error,omitempty"`
}

// VideoSceneResult tags the envelope with the frame's sequence number
// so a batch caller can tell which frame failed.
type VideoSceneResult struct {
	ImageResult
	SceneNumber int `json:"scene_number"`
}

// GeneratePreviewImage requests one image from the backend. A deadline
// expiry downgrades to a failure envelope; other adapter errors
// propagate so callers can distinguish an unreachable backend from a
// backend that produced no image.
func (p *Pipeline) GeneratePreviewImage(ctx context.Context, req PreviewImageRequest) (*ImageResult, error) {
	if req.Style == "" {
		req.Style = DefaultImageStyle
	}
	res, err := p.completeImage(ctx, "preview-img", buildPreviewImagePrompt(req))
	if err != nil {
		return nil, wrapBackendErr("generate preview image", err)
	}
	return res, nil
}

// GenerateVideoScene requests one frame of a scene sequence. Every
// failure, adapter errors included, is downgraded to the envelope so
// one failing frame never aborts the remaining frames of a batch.
func (p *Pipeline) GenerateVideoScene(ctx context.Context, req VideoSceneRequest) (*VideoSceneResult, error) {
	res, err := p.completeImage(ctx, "video-scene", buildVideoScenePrompt(req))
	if err != nil {
		p.logger.Warn("video scene frame failed",
			zap.Int("scene_number", req.SceneNumber),
			zap.Error(err))
		return &VideoSceneResult{
			ImageResult: ImageResult{Success: false, Error: err.Error()},
			SceneNumber: req.SceneNumber,
		}, nil
	}
	return &VideoSceneResult{ImageResult: *res, SceneNumber: req.SceneNumber}, nil
}

// completeImage runs one multimodal backend call under the multimodal
// deadline and folds timeout and zero-image outcomes into the
// envelope. Other adapter errors are returned for the caller's policy.
func (p *Pipeline) completeImage(ctx context.Context, kind, prompt string) (*ImageResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, p.multimodalTimeout)
	defer cancel()

	resp, err := p.client.CompleteMultimodal(callCtx, llm.Request{
		System:    imageSystemPrompt,
		SessionID: p.sessionID(kind),
		Prompt:    prompt,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return &ImageResult{Success: false, Error: ErrGenerationTimeout.Error()}, nil
		}
		return nil, err
	}
	if len(resp.Images) == 0 {
		return &ImageResult{
			Success:      false,
			Error:        "no image generated",
			TextResponse: resp.Text,
		}, nil
	}
	img := resp.Images[0]
	return &ImageResult{
		Success:      true,
		ImageData:    img.Data,
		MIMEType:     img.MIMEType,
		TextResponse: resp.Text,
	}, nil
}
