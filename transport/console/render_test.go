package console

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

func TestRenderBoard(t *testing.T) {
	// Given: a board with a mark of each kind
	board := entity.Board{
		{entity.PlayerX, entity.Empty, entity.Empty},
		{entity.Empty, entity.PlayerO, entity.Empty},
		{entity.Empty, entity.Empty, entity.PlayerX},
	}

	// When: rendering it
	out := RenderBoard(board)

	// Then: every row sits between separators
	assert.Equal(t, ""+
		"— — — — — — —\n"+
		"| X |   |   | \n"+
		"— — — — — — —\n"+
		"|   | O |   | \n"+
		"— — — — — — —\n"+
		"|   |   | X | \n"+
		"— — — — — — —\n", out)
}
