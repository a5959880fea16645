package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestRunReportsFailure(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	seed := "--autoplay-seed=" + strings.Repeat("07", 32)

	is.True(run([]string{"--no-such-flag"}) != nil)

	missing := filepath.Join(dir, "missing", "games.csv")
	err := run([]string{seed, "--autoplay-games=2", "--autoplay-threads=1",
		"--autoplay-output=" + missing})
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "autoplay failed"))

	out := filepath.Join(dir, "games.csv")
	is.NoErr(run([]string{seed, "--autoplay-games=2", "--autoplay-threads=1",
		"--autoplay-output=" + out}))
	_, err = os.Stat(out)
	is.NoErr(err)
}
