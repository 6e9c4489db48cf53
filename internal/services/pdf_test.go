package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/yungbote/hivemind-backend/internal/domain"
)

func TestRenderMasterNotePDF(t *testing.T) {
	var body strings.Builder
	body.WriteString("# Forces\n\n**Newton's laws** describe motion.\n")
	for i := 0; i < 120; i++ {
		body.WriteString("- A long bullet point about inertia, acceleration and reaction pairs that must wrap across the page width.\n")
	}
	pdf, err := RenderMasterNotePDF(&types.MasterNote{
		Topic:     "Physics - Chapter 1",
		Content:   body.String(),
		Version:   3,
		CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	pages, err := api.PageCount(bytes.NewReader(pdf), nil)
	require.NoError(t, err)
	assert.Greater(t, pages, 1)
}

func TestRenderMasterNotePDFNil(t *testing.T) {
	_, err := RenderMasterNotePDF(nil)
	assert.Error(t, err)
}

func TestMasterNotePDFName(t *testing.T) {
	id := uuid.MustParse("7f1c0d3e-1111-4222-8333-444455556666")
	assert.Equal(t, "MasterNote_7f1c0d3e-1111-4222-8333-444455556666_Ch2.pdf", MasterNotePDFName(id, 2))
}

func TestStripInlineMarkdown(t *testing.T) {
	assert.Equal(t, "bold and code", stripInlineMarkdown(" **bold** and `code` "))
}
