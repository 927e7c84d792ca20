package arg

import (
	"errors"
	"strings"
)

func HandleTitle(args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("error: No title given. Try again")
	}
	return args[0], nil
}

// HandleID returns the id or unique id prefix given as the first argument.
func HandleID(args []string) (string, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return "", errors.New("error: No id given. Pass an id or a unique id prefix")
	}
	return strings.TrimSpace(args[0]), nil
}
