package shell

import (
	"embed"
	"errors"
	"strings"
)

//go:embed helptext/*.txt
var helptext embed.FS

func usage() (string, error) {
	dat, err := helptext.ReadFile("helptext/usage.txt")
	if err != nil {
		return "", errors.New("error loading helptext: " + err.Error())
	}
	return string(dat), nil
}

func usageTopic(topic string) (string, error) {
	dat, err := helptext.ReadFile("helptext/" + topic + ".txt")
	if err != nil {
		return "", errors.New("there is no help text for the topic " + topic)
	}
	return string(dat), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	var text string
	var err error
	if len(cmd.args) == 0 {
		text, err = usage()
	} else {
		text, err = usageTopic(cmd.args[0])
	}
	if err != nil {
		return nil, err
	}
	return msg(strings.TrimRight(text, "\n")), nil
}
