package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/muesli/termenv"
)

// AssociationProgress renders the one-line progress of an association search:
//
//	Searching for HomeNet  ████████░░░░░░░░  3/30  (12 networks)
type AssociationProgress struct {
	SSID        string
	MaxAttempts int
	bar         progress.Model
}

// NewAssociationProgress creates a progress line for a search bounded by maxAttempts scans
func NewAssociationProgress(ssid string, maxAttempts int) *AssociationProgress {
	return &AssociationProgress{
		SSID:        Printable(ssid),
		MaxAttempts: max(maxAttempts, 1),
		bar: progress.New(
			progress.WithWidth(24),
			progress.WithoutPercentage(),
			progress.WithFillCharacters('█', '░'),
			progress.WithColorProfile(termenv.Ascii),
		),
	}
}

// Line returns the progress line after attempt scans that saw networks entries
func (p *AssociationProgress) Line(attempt, networks int) string {
	percent := float64(attempt) / float64(p.MaxAttempts)
	if percent > 1 {
		percent = 1
	}
	return fmt.Sprintf("Searching for %s  %s  %d/%d  %s",
		ValueStyle.Render(p.SSID),
		p.bar.ViewAs(percent),
		attempt, p.MaxAttempts,
		MutedStyle.Render(fmt.Sprintf("(%d networks)", networks)),
	)
}

// FoundLine returns the line shown once the network appeared
func (p *AssociationProgress) FoundLine(attempt int) string {
	return fmt.Sprintf("%s Found %s after %d scan(s), associating...", SuccessMarker, ValueStyle.Render(p.SSID), attempt)
}
