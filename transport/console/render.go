package console

import (
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const rowSeparator = "— — — — — — —\n"

// RenderBoard draws board with a separator line above every row and below
// the last one.
func RenderBoard(board entity.Board) string {
	var sb strings.Builder

	for r := range entity.Size {
		sb.WriteString(rowSeparator)
		for c := range entity.Size {
			sb.WriteString("| ")
			sb.WriteString(board[r][c].String())
			sb.WriteString(" ")
		}
		sb.WriteString("| \n")
	}
	sb.WriteString(rowSeparator)

	return sb.String()
}
