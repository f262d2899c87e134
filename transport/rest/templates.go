package rest

import (
	"bytes"
	"html/template"

	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

const boardHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Tic-Tac-Toe</title>
<style>
  table { border-collapse: collapse; }
  td { width: 3rem; height: 3rem; border: 1px solid #444; text-align: center; padding: 0; }
  td button { width: 100%; height: 100%; border: 0; background: none; cursor: pointer; font-size: 1.5rem; }
  .X { color: #c0392b; font-size: 1.5rem; }
  .O { color: #2c6fbb; font-size: 1.5rem; }
  .error { color: #c0392b; }
</style>
</head>
<body>
<h1>Tic-Tac-Toe</h1>
<p id="message">{{.Message}}</p>
{{if .Error}}<p class="error" id="error">{{.Error}}</p>{{end}}
<table id="board">
{{range .Rows}}<tr>
{{range .}}<td>{{if .Mark}}<span class="{{.Mark}}">{{.Mark}}</span>{{else if $.Finished}}&nbsp;{{else}}<form method="post" action="/game/move"><input type="hidden" name="row" value="{{.Row}}"><input type="hidden" name="col" value="{{.Col}}"><button type="submit" aria-label="row {{.Row}} col {{.Col}}">&nbsp;</button></form>{{end}}</td>
{{end}}</tr>
{{end}}</table>
<form method="post" action="/game">
  <label>Board size <input type="number" name="dimension" min="1" value="{{.Dimension}}"></label>
  <button type="submit">New game</button>
</form>
</body>
</html>
`

type templates struct {
	board *template.Template
}

type boardCell struct {
	Row  int
	Col  int
	Mark string
}

type boardView struct {
	Message   string
	Error     string
	Dimension int
	Finished  bool
	Rows      [][]boardCell
}

func loadTemplates() *templates {
	return &templates{
		board: template.Must(template.New("board").Parse(boardHTML)),
	}
}

func (that *templates) renderBoard(game *entity.Game) []byte {
	view := boardView{
		Message:   game.Message,
		Error:     game.LastError,
		Dimension: game.Dimension,
		Finished:  game.IsFinished(),
		Rows:      make([][]boardCell, len(game.Board)),
	}

	for row, marks := range game.Board {
		view.Rows[row] = make([]boardCell, len(marks))
		for col, mark := range marks {
			view.Rows[row][col] = boardCell{Row: row, Col: col, Mark: string(mark)}
		}
	}

	var buf bytes.Buffer
	if err := that.board.Execute(&buf, view); err != nil {
		return []byte("template error: " + template.HTMLEscapeString(err.Error()))
	}

	return buf.Bytes()
}
