package main

import (
	"fmt"
	"strings"

	"github.com/KaiqueGovani/tetrui/internal/tetris"
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Name        string
	BorderColor lipgloss.Color
	TextColor   lipgloss.Color
	AccentColor lipgloss.Color
	PieceColors []lipgloss.Color
}

const levelShiftThemeName = "Level Shift"

var themes = []Theme{
	{
		Name:        "Classic",
		BorderColor: lipgloss.Color("15"),
		TextColor:   lipgloss.Color("250"),
		AccentColor: lipgloss.Color("226"),
		PieceColors: []lipgloss.Color{"51", "226", "93", "46", "196", "21", "208"},
	},
	{
		Name:        "Amber Terminal",
		BorderColor: lipgloss.Color("214"),
		TextColor:   lipgloss.Color("223"),
		AccentColor: lipgloss.Color("208"),
		PieceColors: []lipgloss.Color{"220", "214", "222", "208", "215", "216", "223"},
	},
	{
		Name:        "Ocean Neon",
		BorderColor: lipgloss.Color("33"),
		TextColor:   lipgloss.Color("159"),
		AccentColor: lipgloss.Color("39"),
		PieceColors: []lipgloss.Color{"45", "39", "51", "44", "50", "75", "81"},
	},
	{
		Name:        "Forest CRT",
		BorderColor: lipgloss.Color("22"),
		TextColor:   lipgloss.Color("120"),
		AccentColor: lipgloss.Color("34"),
		PieceColors: []lipgloss.Color{"47", "64", "77", "48", "71", "35", "106"},
	},
	{
		Name:        "Mono Matrix",
		BorderColor: lipgloss.Color("250"),
		TextColor:   lipgloss.Color("245"),
		AccentColor: lipgloss.Color("82"),
		PieceColors: []lipgloss.Color{"236", "239", "242", "245", "248", "251", "254"},
	},
	{
		Name:        levelShiftThemeName,
		BorderColor: lipgloss.Color("15"),
		TextColor:   lipgloss.Color("250"),
		AccentColor: lipgloss.Color("226"),
		PieceColors: []lipgloss.Color{"51", "226", "93", "46", "196", "21", "208"},
	},
}

func themeIndexByName(name string) int {
	for i, theme := range themes {
		if theme.Name == name {
			return i
		}
	}
	return -1
}

// pieceColor maps a 1-based block color onto the theme palette.
func pieceColor(theme Theme, color int) lipgloss.Color {
	if color < 1 {
		color = 1
	}
	return theme.PieceColors[(color-1)%len(theme.PieceColors)]
}

func viewMenu(m Model) string {
	theme := themes[m.themeIndex]
	content := renderMenu("TETRUI", menuItems, m.menuIndex, "Enter to select, Q to quit", theme)
	return center(m.width, m.height, content)
}

func viewThemes(m Model) string {
	theme := themes[m.themeIndex]
	items := make([]string, 0, len(themes))
	for _, t := range themes {
		items = append(items, t.Name)
	}
	preview := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle(theme).Render("Theme Preview"),
		renderPalette(theme),
	)
	menu := renderMenu("Themes", items, m.themeIndex, "Enter to apply, Esc to back", theme)
	content := lipgloss.JoinVertical(lipgloss.Left, preview, "", menu)
	return center(m.width, m.height, content)
}

func renderPalette(theme Theme) string {
	items := make([]string, 0, len(tetris.Shapes))
	for i := range tetris.Shapes {
		piece := tetris.NewPiece(&tetris.Shapes[i], 0, 0)
		items = append(items, lipgloss.NewStyle().MarginRight(1).Render(renderMiniPiece(piece, theme, 1)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

func viewConfig(m Model) string {
	theme := themes[m.themeIndex]
	items := make([]string, 0, len(configItems))
	for i, item := range configItems {
		switch i {
		case 0:
			items = append(items, fmt.Sprintf("%s: %s", item, onOff(m.config.Sound)))
		case 1:
			items = append(items, fmt.Sprintf("%s: %s", item, onOff(m.config.Music)))
		case 2:
			items = append(items, fmt.Sprintf("%s: %d%%", item, clampVolumePercent(m.config.Volume)))
		case 3:
			items = append(items, fmt.Sprintf("%s: %s", item, onOff(m.config.Shadow)))
		case 4:
			items = append(items, fmt.Sprintf("%s: %s", item, onOff(m.config.Animations)))
		case 5:
			items = append(items, fmt.Sprintf("%s: %s", item, onOff(m.config.HardDropTrace)))
		case 6:
			items = append(items, fmt.Sprintf("%s: %dx", item, clampScale(m.config.Scale)))
		}
	}
	content := renderMenu("Config", items, m.configIndex, "Enter to toggle, Left/Right to adjust, Esc to back", theme)
	return center(m.width, m.height, content)
}

func onOff(value bool) string {
	if value {
		return "ON"
	}
	return "OFF"
}

func viewGameOver(m Model) string {
	theme := themes[m.themeIndex]
	var b strings.Builder
	b.WriteString(titleStyle(theme).Render("Game Over"))
	b.WriteString("\n\n")
	if m.outcome != nil {
		b.WriteString(fmt.Sprintf("Final Score: %d  Level: %d  Lines: %d\n\n", m.outcome.Score, m.outcome.Level, m.board.Lines()))
	}
	b.WriteString(helpStyle(theme).Render("Enter to play again, Esc for menu"))
	return center(m.width, m.height, b.String())
}

func viewGame(m Model) string {
	theme := resolveGameTheme(m)
	scale := clampScale(m.config.Scale)
	layout := m.board.Layout()
	minWidth, minHeight := minGameSize(layout, scale)
	if m.width > 0 && m.height > 0 && (m.width < minWidth || m.height < minHeight) {
		message := fmt.Sprintf("Terminal too small. Need at least %dx%d. Current %dx%d.", minWidth, minHeight, m.width, m.height)
		return center(m.width, m.height, message)
	}
	board := renderBoard(m.board, theme, scale, m.config.Shadow, m.effects)
	info := renderInfo(m.board, theme, scale, m.keys, m.paused)
	content := lipgloss.JoinHorizontal(lipgloss.Top, board, info)
	if m.width > 0 && m.width < minWidth+24 {
		content = lipgloss.JoinVertical(lipgloss.Left, board, info)
	}
	return center(m.width, m.height, content)
}

func resolveGameTheme(m Model) Theme {
	selected := themes[m.themeIndex]
	if selected.Name != levelShiftThemeName {
		return selected
	}
	indices := levelShiftThemeIndices()
	if len(indices) == 0 {
		return selected
	}
	return themes[indices[(m.board.Level()-1)%len(indices)]]
}

func levelShiftThemeIndices() []int {
	indices := make([]int, 0, len(themes))
	for i, theme := range themes {
		if theme.Name == levelShiftThemeName {
			continue
		}
		indices = append(indices, i)
	}
	return indices
}

// boardCells flattens locked blocks and the falling piece into colors,
// plus a mask of where the shadow shows through empty cells.
func boardCells(b *tetris.Board, showShadow bool) ([][]int, [][]bool) {
	grid := b.Grid()
	cells := make([][]int, grid.Rows())
	ghost := make([][]bool, grid.Rows())
	for r := range cells {
		cells[r] = make([]int, grid.Columns())
		ghost[r] = make([]bool, grid.Columns())
		for c := range cells[r] {
			if block, ok := grid.At(r, c); ok {
				cells[r][c] = block.Color
			}
		}
	}
	if showShadow {
		if shadow, ok := b.Shadow(); ok {
			for _, block := range shadow.Blocks() {
				if grid.InBounds(block.Row, block.Column) && cells[block.Row][block.Column] == 0 {
					ghost[block.Row][block.Column] = true
				}
			}
		}
	}
	if falling, ok := b.Falling(); ok {
		for _, block := range falling.Blocks() {
			if grid.InBounds(block.Row, block.Column) {
				cells[block.Row][block.Column] = block.Color
				ghost[block.Row][block.Column] = false
			}
		}
	}
	return cells, ghost
}

func renderBoard(b *tetris.Board, theme Theme, scale int, showShadow bool, fx effects) string {
	border := lipgloss.NewStyle().Foreground(theme.BorderColor)
	cellText := strings.Repeat(" ", cellWidth(scale))
	ghostText := strings.Repeat(".", cellWidth(scale))
	cells, ghost := boardCells(b, showShadow)
	columns := b.Grid().Columns()
	ghostColor := theme.TextColor
	if falling, ok := b.Falling(); ok {
		ghostColor = pieceColor(theme, falling.Color())
	}
	ghostStyle := lipgloss.NewStyle().Foreground(ghostColor).Faint(true)
	traceText := strings.Repeat(":", cellWidth(scale))
	traceStyle := lipgloss.NewStyle().Foreground(ghostColor)
	flashText := lipgloss.NewStyle().Background(theme.AccentColor).Render(cellText)
	edge := border.Render("+" + strings.Repeat("-", columns*cellWidth(scale)) + "+")

	var sb strings.Builder
	sb.WriteString(edge)
	sb.WriteString("\n")
	for y := range cells {
		for repeat := 0; repeat < scale; repeat++ {
			sb.WriteString(border.Render("|"))
			for x, color := range cells[y] {
				switch {
				case fx.flashing(y):
					sb.WriteString(flashText)
				case color != 0:
					sb.WriteString(lipgloss.NewStyle().Background(pieceColor(theme, color)).Render(cellText))
				case fx.traced(y, x):
					sb.WriteString(traceStyle.Render(traceText))
				case ghost[y][x]:
					sb.WriteString(ghostStyle.Render(ghostText))
				default:
					sb.WriteString(cellText)
				}
			}
			sb.WriteString(border.Render("|"))
			sb.WriteString("\n")
		}
	}
	sb.WriteString(edge)
	return sb.String()
}

func renderInfo(b *tetris.Board, theme Theme, scale int, keys KeyMap, paused bool) string {
	var sb strings.Builder
	pad := lipgloss.NewStyle().PaddingLeft(2)
	sb.WriteString(pad.Render(titleStyle(theme).Render("Next")))
	sb.WriteString("\n")
	if next, ok := b.Next(); ok {
		sb.WriteString(pad.Render(renderMiniPiece(next, theme, scale)))
	}
	sb.WriteString("\n\n")
	sb.WriteString(pad.Render(titleStyle(theme).Render("Hold")))
	sb.WriteString("\n")
	if held, ok := b.Held(); ok {
		sb.WriteString(pad.Render(renderMiniPiece(held, theme, scale)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(pad.Render(fmt.Sprintf("Score: %d", b.Score())))
	sb.WriteString("\n")
	sb.WriteString(pad.Render(fmt.Sprintf("Lines: %d", b.Lines())))
	sb.WriteString("\n")
	sb.WriteString(pad.Render(fmt.Sprintf("Level: %d", b.Level())))
	sb.WriteString("\n\n")
	for _, binding := range keys.gameHelp() {
		help := binding.Help()
		sb.WriteString(pad.Render(helpStyle(theme).Render(help.Key + ": " + help.Desc)))
		sb.WriteString("\n")
	}
	if paused {
		sb.WriteString("\n")
		sb.WriteString(pad.Render(highlightStyle(theme).Render("Paused")))
	}
	return sb.String()
}

// renderMiniPiece draws a piece in a 4x4 box regardless of its position.
func renderMiniPiece(p *tetris.Piece, theme Theme, scale int) string {
	blocks := p.Blocks()
	minRow, minColumn := blocks[0].Row, blocks[0].Column
	for _, block := range blocks[1:] {
		minRow = min(minRow, block.Row)
		minColumn = min(minColumn, block.Column)
	}
	var grid [4][4]bool
	for _, block := range blocks {
		grid[block.Row-minRow][block.Column-minColumn] = true
	}
	cellText := strings.Repeat(" ", cellWidth(scale))
	filled := lipgloss.NewStyle().Background(pieceColor(theme, p.Color())).Render(cellText)
	var sb strings.Builder
	for y := 0; y < 4; y++ {
		for repeat := 0; repeat < scale; repeat++ {
			for x := 0; x < 4; x++ {
				if grid[y][x] {
					sb.WriteString(filled)
				} else {
					sb.WriteString(cellText)
				}
			}
			sb.WriteString("\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func minGameSize(layout tetris.Layout, scale int) (int, int) {
	width := layout.Columns*cellWidth(scale) + 4
	height := layout.Rows*scale + 4
	return width, height
}

func titleStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true)
}

func highlightStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true).Underline(true)
}

func helpStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.TextColor)
}

func center(width, height int, content string) string {
	if width == 0 || height == 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func clampScale(value int) int {
	if value < 1 {
		return 1
	}
	if value > 3 {
		return 3
	}
	return value
}

func clampVolumePercent(value int) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}

func cellWidth(scale int) int {
	if scale < 1 {
		scale = 1
	}
	return 2 * scale
}

func renderMenu(title string, items []string, selected int, footer string, theme Theme) string {
	maxWidth := lipgloss.Width(title)
	for _, item := range items {
		maxWidth = max(maxWidth, lipgloss.Width(item))
	}
	maxWidth = max(maxWidth, lipgloss.Width(footer))
	lineStyle := lipgloss.NewStyle().Width(maxWidth).Align(lipgloss.Center)
	var b strings.Builder
	b.WriteString(lineStyle.Render(titleStyle(theme).Render(title)))
	b.WriteString("\n\n")
	for i, item := range items {
		if i == selected {
			b.WriteString(lineStyle.Render(highlightStyle(theme).Render(item)))
		} else {
			b.WriteString(lineStyle.Render(item))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lineStyle.Render(helpStyle(theme).Render(footer)))
	return b.String()
}
