package shell

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/solitaire/config"
	"github.com/domino14/solitaire/game"
	"github.com/domino14/solitaire/move"
)

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"autoplay -file /path/to/log.txt",
			&shellcmd{"autoplay", nil, CmdOptions{"file": {"/path/to/log.txt"}}},
			nil},
		{"autoplay stop",
			&shellcmd{"autoplay", []string{"stop"}, CmdOptions{}},
			nil},
		{"play Ts <- 9h",
			&shellcmd{"play", []string{"Ts", "<-", "9h"}, CmdOptions{}},
			nil},
		{"autoplay -games 10 -threads 2 ",
			&shellcmd{"autoplay", nil, CmdOptions{"games": {"10"}, "threads": {"2"}}},
			nil,
		},
		{"autoplay analyze '/tmp/my games.csv'",
			&shellcmd{"autoplay", []string{"analyze", "/tmp/my games.csv"}, CmdOptions{}},
			nil,
		},
		{"play -1", &shellcmd{"play", []string{"-1"}, CmdOptions{}}, nil},
		{"autoplay -file",
			nil, errWrongOptionSyntax},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
}

func testController() (*ShellController, *bytes.Buffer) {
	var buf bytes.Buffer
	return newController(config.DefaultConfig(), &buf), &buf
}

func TestNeedsGame(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	for _, line := range []string{"show", "legal", "play 53", "deal", "undo", "obs", "hash", "returns"} {
		_, err := sc.Execute(line)
		is.Equal(err, errNoGame)
	}
	_, err := sc.Execute("frobnicate")
	is.True(err != nil)
}

func TestPlayThroughShell(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()

	out, err := sc.Execute("new")
	is.NoErr(err)
	is.True(strings.Contains(out, "PLAYER      : -1"))

	// Deal the tableau by hand.
	for _, c := range []string{"Ts", "9h", "5c", "6c", "7c", "8c"} {
		_, err = sc.Execute("chance reveal " + c)
		is.NoErr(err)
	}
	_, err = sc.Execute("play draw")
	is.True(err != nil)
	_, err = sc.Execute("chance 39")
	is.NoErr(err)
	is.True(!sc.game.IsChanceNode())

	out, err = sc.Execute("legal")
	is.NoErr(err)
	is.Equal(out, " 126: Move Ts <- 9h\n 149: Move 9h <- 8c\n  53: Draw")

	_, err = sc.Execute("play Ts <- 9h")
	is.NoErr(err)
	is.True(sc.game.IsChanceNode())
	_, err = sc.Execute("play 149")
	is.True(err != nil)

	out, err = sc.Execute("deal")
	is.NoErr(err)
	is.True(!sc.game.IsChanceNode())
	is.True(strings.Contains(out, "TABLEAU"))

	h1, err := sc.Execute("hash")
	is.NoErr(err)
	is.Equal(len(h1), 16)

	before := len(sc.game.History())
	_, err = sc.Execute("play draw")
	is.NoErr(err)
	is.Equal(sc.game.History()[before], move.Draw)
	_, err = sc.Execute("undo")
	is.NoErr(err)
	is.Equal(len(sc.game.History()), before)
	h2, err := sc.Execute("hash")
	is.NoErr(err)
	is.Equal(h1, h2)

	out, err = sc.Execute("obs")
	is.NoErr(err)
	lines := strings.Split(out, "\n")
	is.Equal(len(strings.Fields(lines[len(lines)-1])), game.ObservationSize)

	out, err = sc.Execute("obs info")
	is.NoErr(err)
	is.True(strings.HasPrefix(out, "0, 10, 22"))

	out, err = sc.Execute("returns")
	is.NoErr(err)
	is.True(strings.HasPrefix(out, "returns: "))
}

func TestChanceOnlyAtChanceNodes(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	_, err := sc.Execute("new -deal true")
	is.NoErr(err)
	is.True(!sc.game.IsChanceNode())
	_, err = sc.Execute("chance")
	is.True(err != nil)
	_, err = sc.Execute("play reveal As")
	is.True(err != nil)
}

func TestHelp(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	out, err := sc.Execute("help")
	is.NoErr(err)
	is.True(strings.HasPrefix(out, "Usage:"))
	out, err = sc.Execute("help play")
	is.NoErr(err)
	is.True(strings.Contains(out, "target first"))
	_, err = sc.Execute("help nothing")
	is.True(err != nil)
}

func TestAutoplayAnalyze(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	out := filepath.Join(t.TempDir(), "games.csv")
	sc.config.Set(config.ConfigAutoplaySeed, strings.Repeat("02", 32))

	resp, err := sc.Execute("autoplay -games 4 -threads 2 -file " + out)
	is.NoErr(err)
	is.True(strings.HasPrefix(resp, "autoplay started: 4 games"))
	<-sc.autoplayDone
	is.True(!sc.autoplayRunning())

	resp, err = sc.Execute("autoplay analyze " + out)
	is.NoErr(err)
	is.True(strings.HasPrefix(resp, "Games played: 4"))

	_, err = sc.Execute("autoplay stop")
	is.True(err != nil)
}
