package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

var errQuit = errors.New("player quit")

type uGamePlay interface {
	NewGame(ctx context.Context, gameType string, computerFirst bool) (*entity.Game, error)
	MakeTurn(ctx context.Context, game *entity.Game, move entity.Move) (*entity.Move, error)
}

type Options struct {
	// Mode is entity.HumanType or entity.ComputerType. Empty asks the player.
	Mode          string
	ComputerFirst bool
}

type Server struct {
	logger   *slog.Logger
	gamePlay uGamePlay
	options  Options

	handlers map[string]func(ctx context.Context, session *session) error
}

// session is one player sitting at the terminal.
type session struct {
	game  *entity.Game
	lines <-chan string
	out   io.Writer
}

func New(logger *slog.Logger, gamePlay uGamePlay, options Options) *Server {
	server := &Server{
		logger:   logger.With("component", "console"),
		gamePlay: gamePlay,
		options:  options,

		handlers: make(map[string]func(context.Context, *session) error),
	}

	server.handlers["help"] = server.handleHelp
	server.handlers["board"] = server.handleBoard
	server.handlers["quit"] = server.handleQuit

	return server
}

// Start plays one game over in and out. It returns nil when the game ends,
// the player quits or input is exhausted, and the context error when ctx is
// cancelled first.
func (that *Server) Start(ctx context.Context, in io.Reader, out io.Writer) error {
	log := that.logger.With("method", "Start")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go that.readLines(ctx, in, lines)

	s := &session{lines: lines, out: out}
	s.println(msgWelcome)

	err := that.play(ctx, s)
	switch {
	case errors.Is(err, errQuit), errors.Is(err, io.EOF):
		s.println(msgBye)
		log.Info("session ended by player")
		return nil
	case err != nil:
		return err
	}

	log.Info("session finished")

	return nil
}

// readLines feeds trimmed input lines to the session until EOF or ctx is done.
func (that *Server) readLines(ctx context.Context, in io.Reader, lines chan<- string) {
	defer close(lines)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case lines <- strings.TrimSpace(scanner.Text()):
		case <-ctx.Done():
			return
		}
	}

	if err := scanner.Err(); err != nil {
		that.logger.Error("failed to read input", "error", err)
	}
}

func (that *Server) play(ctx context.Context, s *session) error {
	gameType, err := that.chooseMode(ctx, s)
	if err != nil {
		return err
	}

	computerFirst := that.options.ComputerFirst && gameType == entity.ComputerType

	game, err := that.gamePlay.NewGame(ctx, gameType, computerFirst)
	if err != nil {
		return fmt.Errorf("could not start game: %w", err)
	}
	s.game = game

	log := that.logger.With("method", "play", "game_id", game.ID)
	log.Info("game started", "type", game.Type, "computer_first", computerFirst)

	s.println(msgInitialBoard)
	s.println(RenderBoard(entity.Board{}))
	if game.Board != (entity.Board{}) {
		s.println(msgComputerMoved)
		s.println(RenderBoard(game.Board))
	}

	for game.IsOngoing() {
		move, err := that.readMove(ctx, s, that.prompt(game))
		if err != nil {
			return err
		}

		reply, err := that.gamePlay.MakeTurn(ctx, game, move)
		if errors.Is(err, apperror.ErrInvalidMove) {
			log.Debug("move rejected", "move", move.String(), "error", err)
			s.println(msgCellReserved)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to make turn: %w", err)
		}

		that.report(s, game, reply)
	}

	return nil
}

func (that *Server) chooseMode(ctx context.Context, s *session) (string, error) {
	switch that.options.Mode {
	case entity.HumanType, entity.ComputerType:
		return that.options.Mode, nil
	}

	s.println(msgChooseMode)
	for {
		line, err := s.readLine(ctx)
		if err != nil {
			return "", err
		}

		if handled, err := that.handleCommand(ctx, s, line); handled {
			if err != nil {
				return "", err
			}
			s.println(msgChooseMode)
			continue
		}

		switch line {
		case "1":
			return entity.HumanType, nil
		case "2":
			return entity.ComputerType, nil
		}

		s.println(msgUnknownMode)
	}
}

// readMove prompts until the player types a well formed move on the board.
// Whether the cell is free is left to the game.
func (that *Server) readMove(ctx context.Context, s *session, prompt string) (entity.Move, error) {
	s.println(prompt)
	for {
		line, err := s.readLine(ctx)
		if err != nil {
			return entity.Move{}, err
		}

		if handled, err := that.handleCommand(ctx, s, line); handled {
			if err != nil {
				return entity.Move{}, err
			}
			s.println(prompt)
			continue
		}

		move, err := ParseMove(line)
		if err != nil {
			that.logger.Debug("input rejected", "input", line, "error", err)
			s.println(msgInvalidInput)
			continue
		}

		return move, nil
	}
}

func (that *Server) handleCommand(ctx context.Context, s *session, line string) (bool, error) {
	handler, ok := that.handlers[strings.ToLower(line)]
	if !ok {
		return false, nil
	}

	return true, handler(ctx, s)
}

func (that *Server) prompt(game *entity.Game) string {
	if game.IsWithComputer() {
		return msgHumanPrompt
	}

	name := game.Turn.String()
	if player := game.PlayerByMark(game.Turn); player != nil {
		name = player.Name
	}

	return fmt.Sprintf(msgPlayerPrompt, name, game.Turn)
}

// report prints the board after the human move, then the computer's reply
// if there was one, and the result once the game is over.
func (that *Server) report(s *session, game *entity.Game, reply *entity.Move) {
	board := game.Board
	if reply != nil {
		board[reply.Row][reply.Col] = entity.Empty
	}
	s.println(RenderBoard(board))

	if reply != nil {
		s.println(msgComputerMoved)
		s.println(RenderBoard(game.Board))
	}

	if game.IsFinished() {
		s.println(that.result(game))
	}
}

func (that *Server) result(game *entity.Game) string {
	if game.Draw {
		if game.IsWithComputer() {
			return msgComputerDraw
		}
		return msgPlayersDraw
	}

	player := game.PlayerByMark(game.Winner)
	switch {
	case player == nil:
		return fmt.Sprintf(msgPlayerWon, game.Winner)
	case player.IsComputer:
		return msgComputerWon
	case game.IsWithComputer():
		return msgHumanWon
	default:
		return fmt.Sprintf(msgPlayerWon, player.Name)
	}
}

func (that *Server) handleHelp(_ context.Context, s *session) error {
	s.println(msgHelp)
	return nil
}

func (that *Server) handleBoard(_ context.Context, s *session) error {
	if s.game == nil {
		s.println(RenderBoard(entity.Board{}))
		return nil
	}

	s.println(RenderBoard(s.game.Board))

	return nil
}

func (that *Server) handleQuit(_ context.Context, _ *session) error {
	return errQuit
}

func (that *session) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-that.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	}
}

func (that *session) println(text string) {
	fmt.Fprintln(that.out, text)
}
