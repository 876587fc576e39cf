package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/shuna/azooKey/internal/session"
)

var (
	styleDefault    = tcell.StyleDefault
	styleStatus     = tcell.StyleDefault.Reverse(true)
	styleSelected   = tcell.StyleDefault.Reverse(true).Bold(true)
	stylePrediction = tcell.StyleDefault.Dim(true)
)

func (a *Application) draw(screen tcell.Screen) {
	screen.Clear()
	width, height := screen.Size()
	if width == 0 || height < 4 {
		screen.Show()
		return
	}

	// Document area: everything above the two bottom rows.
	docHeight := height - 2
	cx, cy := a.drawDocument(screen, width, docHeight)
	screen.ShowCursor(cx, cy)

	a.drawStatus(screen, width, height-2)
	a.drawResults(screen, width, height-1)

	screen.Show()
}

// drawDocument renders the host text with simple width-aware wrapping
// and returns the cursor cell.
func (a *Application) drawDocument(screen tcell.Screen, width, height int) (cx, cy int) {
	x, y := 0, 0
	place := func(r rune) {
		w := runewidth.RuneWidth(r)
		if r == '\n' || x+w > width {
			x, y = 0, y+1
			if r == '\n' {
				return
			}
		}
		if y < height {
			screen.SetContent(x, y, r, nil, styleDefault)
		}
		x += w
	}

	for _, r := range a.doc.BeforeCursor() {
		place(r)
	}
	cx, cy = x, y
	for _, r := range a.doc.AfterCursor() {
		place(r)
	}
	return cx, cy
}

func (a *Application) drawStatus(screen tcell.Screen, width, y int) {
	state := a.session.State()
	line := fmt.Sprintf(" %s ", state)
	if state != session.StateIdle {
		line += fmt.Sprintf("「%s」 ", a.session.ComposingText())
	}
	x := drawText(screen, 0, y, styleStatus, line)
	for ; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, styleStatus)
	}
}

func (a *Application) drawResults(screen tcell.Screen, width, y int) {
	a.mu.Lock()
	results := a.results
	supplements := a.supplements
	predictions := a.predictions
	selection := a.selection
	a.mu.Unlock()

	x := 0
	for i, item := range results {
		style := styleDefault
		if i == selection {
			style = styleSelected
		}
		label := fmt.Sprintf("%d:%s", i+1, item.DisplayText())
		if x+runewidth.StringWidth(label)+1 > width {
			break
		}
		x = drawText(screen, x, y, style, label)
		x = drawText(screen, x, y, styleDefault, " ")
	}
	for _, item := range supplements {
		label := "+" + item.DisplayText()
		if x+runewidth.StringWidth(label)+1 > width {
			break
		}
		x = drawText(screen, x, y, stylePrediction, label)
		x = drawText(screen, x, y, styleDefault, " ")
	}
	if len(results) == 0 && len(supplements) == 0 {
		for _, p := range predictions {
			label := "→" + p.Text
			if x+runewidth.StringWidth(label)+1 > width {
				break
			}
			x = drawText(screen, x, y, stylePrediction, label)
			x = drawText(screen, x, y, styleDefault, " ")
		}
	}
}

// drawText draws s at (x, y) and returns the x after it.
func drawText(screen tcell.Screen, x, y int, style tcell.Style, s string) int {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	return x
}
