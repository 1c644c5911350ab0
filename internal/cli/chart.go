package cli

import (
	"math"
	"strings"

	"github.com/Renotrader31/options-calculator/internal/models"
)

// RenderPayoffChart draws an ASCII chart of the expiration P&L curve with
// the zero line marked. Width and height are the plot area in characters.
func RenderPayoffChart(output *Output, curve models.PLCurve, width, height int) {
	if len(curve.Prices) == 0 || width < 10 || height < 3 {
		return
	}

	minPL, maxPL := curve.ExpirationPL[0], curve.ExpirationPL[0]
	for _, pl := range curve.ExpirationPL {
		minPL = math.Min(minPL, pl)
		maxPL = math.Max(maxPL, pl)
	}
	if maxPL == minPL {
		maxPL = minPL + 1
	}

	// Row index for a P&L value; row 0 is the top of the plot.
	rowOf := func(pl float64) int {
		frac := (pl - minPL) / (maxPL - minPL)
		row := int(math.Round(float64(height-1) * (1 - frac)))
		if row < 0 {
			row = 0
		}
		if row >= height {
			row = height - 1
		}
		return row
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	zeroRow := -1
	if minPL <= 0 && maxPL >= 0 {
		zeroRow = rowOf(0)
		for col := 0; col < width; col++ {
			grid[zeroRow][col] = '·'
		}
	}

	n := len(curve.Prices)
	for col := 0; col < width; col++ {
		idx := col * (n - 1) / (width - 1)
		row := rowOf(curve.ExpirationPL[idx])
		mark := '●'
		if curve.ExpirationPL[idx] < 0 {
			mark = '○'
		}
		grid[row][col] = mark
	}

	labelWidth := 12
	for i, row := range grid {
		label := strings.Repeat(" ", labelWidth)
		switch i {
		case 0:
			label = PadLeft(FormatCurrency(maxPL), labelWidth)
		case height - 1:
			label = PadLeft(FormatCurrency(minPL), labelWidth)
		case zeroRow:
			label = PadLeft("$0.00", labelWidth)
		}
		line := label + " │" + string(row)
		if output.colorEnabled {
			line = strings.ReplaceAll(line, "●", ColorGreen+"●"+ColorReset)
			line = strings.ReplaceAll(line, "○", ColorRed+"○"+ColorReset)
		}
		output.Println(line)
	}

	axis := strings.Repeat(" ", labelWidth) + " └" + strings.Repeat("─", width)
	output.Println(output.DimText(axis))

	lo := FormatPrice(curve.Prices[0])
	hi := FormatPrice(curve.Prices[n-1])
	gap := width - len(lo) - len(hi)
	if gap < 1 {
		gap = 1
	}
	output.Println(strings.Repeat(" ", labelWidth+2) + lo + strings.Repeat(" ", gap) + hi)
}
