package services

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	types "github.com/yungbote/hivemind-backend/internal/domain"
)

// Letter at 120 dpi.
const (
	pdfPageW   = 1020
	pdfPageH   = 1320
	pdfMargin  = 90.0
	pdfBodyPt  = 15.0
	pdfTitlePt = 26.0
	pdfHeadPt  = 19.0
)

var (
	fontsOnce sync.Once
	fontReg   *truetype.Font
	fontBold  *truetype.Font
	fontsErr  error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		if fontReg, fontsErr = truetype.Parse(goregular.TTF); fontsErr != nil {
			return
		}
		fontBold, fontsErr = truetype.Parse(gobold.TTF)
	})
	return fontsErr
}

type pdfLine struct {
	text string
	face font.Face
	gap  float64 // extra space after the line
}

// RenderMasterNotePDF lays the note out as raster pages and wraps them in a PDF.
func RenderMasterNotePDF(note *types.MasterNote) ([]byte, error) {
	if note == nil {
		return nil, fmt.Errorf("master note required")
	}
	if err := loadFonts(); err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}
	title := truetype.NewFace(fontBold, &truetype.Options{Size: pdfTitlePt})
	head := truetype.NewFace(fontBold, &truetype.Options{Size: pdfHeadPt})
	body := truetype.NewFace(fontReg, &truetype.Options{Size: pdfBodyPt})
	bold := truetype.NewFace(fontBold, &truetype.Options{Size: pdfBodyPt})

	measure := gg.NewContext(pdfPageW, pdfPageH)
	width := float64(pdfPageW) - 2*pdfMargin
	wrap := func(s string, face font.Face, gap float64) []pdfLine {
		measure.SetFontFace(face)
		parts := measure.WordWrap(s, width)
		out := make([]pdfLine, 0, len(parts))
		for i, p := range parts {
			l := pdfLine{text: p, face: face}
			if i == len(parts)-1 {
				l.gap = gap
			}
			out = append(out, l)
		}
		return out
	}

	var lines []pdfLine
	lines = append(lines, wrap("Master Note: "+note.Topic, title, 14)...)
	lines = append(lines, wrap(fmt.Sprintf("Version: %d | Date: %s", note.Version, note.CreatedAt.Format("2006-01-02")), body, 28)...)
	for _, raw := range strings.Split(note.Content, "\n") {
		p := strings.TrimSpace(raw)
		if p == "" {
			continue
		}
		switch {
		case strings.HasPrefix(p, "#"):
			lines = append(lines, wrap(stripInlineMarkdown(strings.TrimLeft(p, "# ")), head, 10)...)
		case strings.HasPrefix(p, "- "), strings.HasPrefix(p, "* "):
			lines = append(lines, wrap("• "+stripInlineMarkdown(p[2:]), body, 6)...)
		case strings.HasPrefix(p, "**") && strings.HasSuffix(p, "**"):
			lines = append(lines, wrap(stripInlineMarkdown(p), bold, 6)...)
		default:
			lines = append(lines, wrap(stripInlineMarkdown(p), body, 6)...)
		}
	}

	pages, err := paginate(lines)
	if err != nil {
		return nil, err
	}
	readers := make([]io.Reader, 0, len(pages))
	for _, p := range pages {
		readers = append(readers, bytes.NewReader(p))
	}
	var out bytes.Buffer
	if err := api.ImportImages(nil, &out, readers, pdfcpu.DefaultImportConfig(), nil); err != nil {
		return nil, fmt.Errorf("assemble pdf: %w", err)
	}
	return out.Bytes(), nil
}

func newPage() *gg.Context {
	dc := gg.NewContext(pdfPageW, pdfPageH)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0.1, 0.1, 0.12)
	return dc
}

func paginate(lines []pdfLine) ([][]byte, error) {
	var pages [][]byte
	dc := newPage()
	y := pdfMargin
	flush := func() error {
		var buf bytes.Buffer
		if err := dc.EncodePNG(&buf); err != nil {
			return fmt.Errorf("encode page: %w", err)
		}
		pages = append(pages, buf.Bytes())
		return nil
	}
	for _, l := range lines {
		dc.SetFontFace(l.face)
		h := dc.FontHeight() * 1.35
		if y+h > float64(pdfPageH)-pdfMargin && y > pdfMargin {
			if err := flush(); err != nil {
				return nil, err
			}
			dc = newPage()
			dc.SetFontFace(l.face)
			y = pdfMargin
		}
		y += h
		dc.DrawString(l.text, pdfMargin, y)
		y += l.gap
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return pages, nil
}

func stripInlineMarkdown(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return strings.TrimSpace(s)
}

func MasterNotePDFName(subjectID fmt.Stringer, chapter int) string {
	return fmt.Sprintf("MasterNote_%s_Ch%d.pdf", subjectID, chapter)
}
