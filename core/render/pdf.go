// Package render — PDF renderer.
// Converts a conversation into a styled PDF using gofpdf: a date header,
// sender-labelled message paragraphs, and italicized system notices.
package render

import (
	"bytes"
	"strings"

	"github.com/gaurav-prasanna/chatpipe/core"
	"github.com/jung-kurt/gofpdf"
)

// PDFRenderer renders a conversation as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts the conversation into PDF bytes.
func (r *PDFRenderer) Render(conv *core.Conversation) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Title line: the conversation date, falling back to the export title.
	title := conv.SourceTitle
	if conv.Date != nil {
		title = "AIM Conversation - " + conv.Date.Format("January 2, 2006")
	}
	if title != "" {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.MultiCell(0, 8, title, "", "L", false)
		pdf.Ln(2)
	}

	// Source path and description in muted text.
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	if conv.SourcePath != "" {
		pdf.MultiCell(0, 5, "Source: "+conv.SourcePath, "", "L", false)
	}
	if conv.Description != "" {
		pdf.MultiCell(0, 5, conv.Description, "", "L", false)
	}
	if len(conv.Participants) > 0 {
		pdf.MultiCell(0, 5, "Participants: "+strings.Join(conv.Participants, ", "), "", "L", false)
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	for _, msg := range conv.Messages {
		if msg.IsSystemMessage {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.SetTextColor(100, 100, 100)
			pdf.MultiCell(0, 5, "[System: "+msg.Content+"]", "", "L", false)
			pdf.SetTextColor(0, 0, 0)
			pdf.Ln(2)
			continue
		}

		label := msg.Sender
		if msg.Timestamp != "" {
			label += " (" + msg.Timestamp + ")"
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.MultiCell(0, 5, label, "", "L", false)

		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, msg.Content, "", "L", false)
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}
