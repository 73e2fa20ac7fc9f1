package invaders

import (
	"fmt"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

const (
	hudRows = 2
	minCols = 40
	minRows = 12
)

// Render draws the snapshot onto dst. World coordinates are scaled to the
// screen below the two HUD rows.
func Render(snap Snapshot, dst *core.Screen) {
	dst.Clear()

	if dst.Width() < minCols || dst.Height() < minRows {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minCols, minRows))
		return
	}

	switch snap.Phase {
	case PhaseHome:
		renderHome(snap, dst)
	case PhasePlaying:
		renderField(snap, dst)
	case PhaseGameOver:
		renderHUD(snap, dst)
		renderGameOver(snap, dst)
	}
}

// field maps world space to the screen area under the HUD.
type field struct {
	worldW, worldH int
	cols, rows     int
}

func newField(snap Snapshot, dst *core.Screen) field {
	return field{
		worldW: snap.World.Width,
		worldH: snap.World.Height,
		cols:   dst.Width(),
		rows:   dst.Height() - hudRows,
	}
}

// rect converts a world box to a screen box at least one cell in size.
func (f field) rect(x, y, w, h int) core.Rect {
	sx := core.Scale(x, f.worldW, f.cols)
	sy := hudRows + core.Scale(y, f.worldH, f.rows)
	sw := max(1, core.Scale(w, f.worldW, f.cols))
	sh := max(1, core.Scale(h, f.worldH, f.rows))
	return core.NewRect(sx, sy, sw, sh)
}

func renderField(snap Snapshot, dst *core.Screen) {
	renderHUD(snap, dst)
	f := newField(snap, dst)

	for _, a := range snap.Aliens {
		r := f.rect(a.X, a.Y, a.W, a.H)
		dst.DrawRect(r, a.Kind.Glyph(), alienColor(a.Kind))
	}
	for _, x := range snap.Explosions {
		r := f.rect(x.X, x.Y, 1, 1)
		dst.SetColored(r.X, r.Y, '*', core.ColorOrange)
	}
	for _, p := range snap.PowerUps {
		r := f.rect(p.X, p.Y, p.Size, p.Size)
		dst.SetColored(r.X, r.Y, p.Kind.Glyph(), core.ColorMagenta)
	}
	for _, b := range snap.Bullets {
		r := f.rect(b.X, b.Y, b.W, b.H)
		dst.SetColored(r.X, r.Y, '|', core.ColorBrightYellow)
	}
	for _, b := range snap.AlienBullets {
		r := f.rect(b.X, b.Y, b.W, b.H)
		dst.SetColored(r.X, r.Y, '!', core.ColorRed)
	}

	p := snap.Player
	pr := f.rect(p.X, p.Y, p.W, p.H)
	shipColor := core.ColorBrightGreen
	if p.HitFlash {
		shipColor = core.ColorBrightRed
	}
	dst.DrawRect(pr, '█', shipColor)
	dst.SetColored(pr.X+pr.W/2, pr.Y-1, '▲', shipColor)
}

func renderHUD(snap Snapshot, dst *core.Screen) {
	dst.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", snap.Score), core.ColorWhite)
	dst.DrawTextCentered(0, fmt.Sprintf("Lives: %d  Wave: %d", snap.Lives, snap.Wave))
	hi := fmt.Sprintf("Hi: %d", snap.HighScore)
	dst.DrawTextColored(dst.Width()-len(hi)-1, 0, hi, core.ColorYellow)

	if snap.PowerUp != PowerUpNone {
		secs := (snap.PowerUpRemainingMs + 999) / 1000
		dst.DrawTextColored(1, 1, fmt.Sprintf("%s %ds", snap.PowerUp, secs), core.ColorCyan)
		return
	}
	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)
}

func renderHome(snap Snapshot, dst *core.Screen) {
	top := dst.Height()/2 - 6
	if top < 0 {
		top = 0
	}
	dst.DrawTextCentered(top, "S P A C E   I N V A D E R S")
	dst.DrawTextCentered(top+2, "HIGH SCORES")

	if len(snap.HighScores) == 0 {
		dst.DrawTextCentered(top+4, "No scores yet")
	}
	for i, s := range snap.HighScores {
		dst.DrawTextCentered(top+4+i, fmt.Sprintf("%d. %6d", i+1, s))
	}

	dst.DrawTextCentered(dst.Height()-3, "Press ENTER to start")
	dst.DrawTextCentered(dst.Height()-2, "←/→ move   SPACE fire   Q quit")
}

func renderGameOver(snap Snapshot, dst *core.Screen) {
	box := core.NewRect(dst.Width()/2-14, dst.Height()/2-3, 28, 7)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, "GAME OVER")
	dst.DrawTextCentered(box.Y+2, fmt.Sprintf("Final score: %d", snap.Score))
	if snap.Rank > 0 {
		dst.DrawTextCentered(box.Y+3, fmt.Sprintf("New high score! #%d", snap.Rank))
	}
	dst.DrawTextCentered(box.Y+5, "R replay  H home")
}

func alienColor(k AlienKind) core.Color {
	switch k {
	case AlienSquid:
		return core.ColorMagenta
	case AlienCrab:
		return core.ColorCyan
	default:
		return core.ColorGreen
	}
}
