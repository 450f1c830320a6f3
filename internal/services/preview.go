package services

import (
	"bytes"
	"context"

	"zhurnal/internal/logger"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"
)

// PreviewService рендерит markdown статьи в HTML для предпросмотра в
// кабинете издателя и прогоняет результат через санитайзер.
type PreviewService struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewPreviewService() *PreviewService {
	p := bluemonday.UGCPolicy()
	p.AllowElements("img")
	p.AllowAttrs("src", "alt").OnElements("img")
	return &PreviewService{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: p,
	}
}

// Render возвращает очищенный HTML; ничего не сохраняет.
func (s *PreviewService) Render(ctx context.Context, markdown string) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	clean := s.policy.SanitizeBytes(buf.Bytes())

	// безопасно логируем только длины
	logger.WithCtx(ctx).Debug("Предпросмотр статьи (render+sanitize)",
		zap.Int("raw_len", len(markdown)),
		zap.Int("clean_len", len(clean)),
	)
	return string(clean), nil
}
