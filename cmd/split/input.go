package main

import (
	"fmt"
	"os"

	"team-roulette/errors"

	"github.com/gabriel-vasile/mimetype"
)

// readText refuses anything that doesn't sniff as text, names are typed one per line.
func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", nil
	}
	for mtype := mimetype.Detect(data); mtype != nil; mtype = mtype.Parent() {
		if mtype.Is("text/plain") {
			return string(data), nil
		}
	}
	return "", fmt.Errorf("%w: %s is %s", errors.ErrNotTextInput, path, mimetype.Detect(data).String())
}
