package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
)

// Geometry leaves room for the status line. Cells are two columns wide so
// the field looks roughly square.
var Geometry = session.Geometry{OriginX: 1, OriginY: 2, CellWidth: 2, CellHeight: 1}

var numberColors = [...]tcell.Color{
	tcell.ColorDefault,
	tcell.ColorBlue,
	tcell.ColorGreen,
	tcell.ColorRed,
	tcell.ColorNavy,
	tcell.ColorMaroon,
	tcell.ColorTeal,
	tcell.ColorWhite,
	tcell.ColorGray,
}

type UI struct {
	screen  tcell.Screen
	session *session.Session
	log     *logrus.Logger
	pressed tcell.ButtonMask
}

func New(screen tcell.Screen, s *session.Session, log *logrus.Logger) *UI {
	return &UI{screen: screen, session: s, log: log}
}

func cellRune(c mines.CellStatus) (rune, tcell.Style) {
	style := tcell.StyleDefault
	switch {
	case c == mines.Unknown:
		return '.', style.Foreground(tcell.ColorSilver)
	case c == mines.Flag, c == mines.CorrectFlag:
		return 'F', style.Foreground(tcell.ColorYellow).Bold(true)
	case c == mines.WrongFlag:
		return 'x', style.Foreground(tcell.ColorRed)
	case c == mines.ExplodedMine:
		return '*', style.Background(tcell.ColorRed).Foreground(tcell.ColorBlack)
	case c == mines.UnflaggedMine:
		return '*', style.Foreground(tcell.ColorRed)
	case c == 0:
		return ' ', style
	case 1 <= c && c <= 8:
		return rune('0' + c), style.Foreground(numberColors[c]).Bold(true)
	default:
		return '?', style
	}
}

func (ui *UI) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		ui.screen.SetContent(x+i, y, r, nil, style)
	}
}

// Draw repaints the whole screen from a fresh snapshot.
func (ui *UI) Draw() {
	snap := ui.session.Snapshot()
	ui.screen.Clear()

	status := fmt.Sprintf(
		"%s  %s  mines: %d  flags: %d   [n]ew [r]esign [q]uit",
		snap.Status, snap.Seed(), snap.MineCount, snap.FlagCount,
	)
	ui.drawText(Geometry.OriginX, 0, status, tcell.StyleDefault.Bold(true))

	for y := range snap.Height {
		for x := range snap.Width {
			px, py := Geometry.CellToPixel(x, y)
			r, style := cellRune(snap.Grid[y*snap.Width+x])
			ui.screen.SetContent(px, py, r, nil, style)
		}
	}
	ui.screen.Show()
}

func (ui *UI) click(px, py int, b session.Button) {
	snap, err := ui.session.Click(px, py, b)
	if errors.Is(err, mines.ErrOutOfRange) {
		return
	}
	if err != nil {
		ui.log.WithError(err).Debug("click ignored")
		return
	}
	if snap.Status != mines.Playing {
		ui.log.WithFields(logrus.Fields{
			"params": snap.Seed(),
			"status": snap.Status.String(),
		}).Info("game over")
	}
}

// HandleEvent applies one terminal event and reports whether to quit.
func (ui *UI) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		ui.screen.Sync()
	case *tcell.EventInterrupt:
		return true
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC,
			ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return true
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'n':
			params := ui.session.Params()
			if _, err := ui.session.Reset(params); err != nil {
				ui.log.WithError(err).Error("unable to start a new game")
			}
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
			ui.session.Forfeit()
		}
	case *tcell.EventMouse:
		buttons := ev.Buttons() & (tcell.Button1 | tcell.Button2 | tcell.Button3)
		pressed := ui.pressed
		ui.pressed = buttons
		if pressed != tcell.ButtonNone || buttons == tcell.ButtonNone {
			return false
		}
		px, py := ev.Position()
		switch {
		case buttons&tcell.Button1 != 0:
			ui.click(px, py, session.LeftButton)
		case buttons&tcell.Button2 != 0:
			ui.click(px, py, session.RightButton)
		case buttons&tcell.Button3 != 0:
			ui.click(px, py, session.MiddleButton)
		}
	}
	return false
}

// Run redraws after every event until the player quits or ctx is done.
func (ui *UI) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		ui.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	for {
		ui.Draw()
		ev := ui.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if ui.HandleEvent(ev) {
			return nil
		}
	}
}
