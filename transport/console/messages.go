package console

const (
	msgWelcome      = "Welcome to Tic-Tac-Toe game!"
	msgInitialBoard = "Initial board is empty."
	msgChooseMode   = "Choose game mode: 1 - two players, 2 - against the computer: "
	msgUnknownMode  = "Unknown mode. Please, choose 1 or 2: "

	msgPlayerPrompt = "%s (%s), please input your move in x,y format: "
	msgPlayerWon    = "Congratulations, %s you won!"
	msgPlayersDraw  = "Good job, guys! Draw!"

	msgHumanPrompt   = "Please, input your move in x,y format: "
	msgHumanWon      = "Congratulations, you won!"
	msgComputerDraw  = "Draw! You're as smart as minimax algorithm!"
	msgComputerMoved = "Computer has made a move: "
	msgComputerWon   = "Ha-ha, I won!"

	msgInvalidInput = "Invalid move. Please, try again: "
	msgCellReserved = "Invalid move. Cell is reserved already."

	msgHelp = `Moves are entered as x,y where x is the row and y the column, both from 0 to 2.
Commands:
  help   show this message
  board  print the board
  quit   leave the game`
	msgBye = "Bye!"
)
