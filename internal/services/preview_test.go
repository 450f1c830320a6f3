package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewRender(t *testing.T) {
	svc := NewPreviewService()

	html, err := svc.Render(context.Background(), "# Заголовок\n\n**жирный** текст")
	require.NoError(t, err)
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<strong>жирный</strong>")
}

func TestPreviewRender_StripsScripts(t *testing.T) {
	svc := NewPreviewService()

	html, err := svc.Render(context.Background(), "до\n\n<script>alert(1)</script>\n\nпосле")
	require.NoError(t, err)
	assert.NotContains(t, html, "<script")
	assert.NotContains(t, html, "alert(1)")
	assert.Contains(t, html, "до")
	assert.Contains(t, html, "после")
}

func TestPreviewRender_KeepsImages(t *testing.T) {
	svc := NewPreviewService()

	html, err := svc.Render(context.Background(), `![обложка](https://cdn.example.com/x.png)`)
	require.NoError(t, err)
	assert.Contains(t, html, "<img")
	assert.Contains(t, html, `src="https://cdn.example.com/x.png"`)
}
