package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

var affirmativeResponses = map[string]struct{}{
	"y":   {},
	"yes": {},
}

// IOConfirmationPrompter asks yes/no questions over a pair of streams.
type IOConfirmationPrompter struct {
	scanner *bufio.Scanner
	writer  io.Writer
}

// NewIOConfirmationPrompter constructs a prompter that reads answers line by line from input.
func NewIOConfirmationPrompter(input io.Reader, output io.Writer) *IOConfirmationPrompter {
	if output == nil {
		output = io.Discard
	}
	return &IOConfirmationPrompter{scanner: bufio.NewScanner(input), writer: output}
}

// Confirm prints prompt and accepts y or yes in any case. Empty answers and EOF decline.
func (prompter *IOConfirmationPrompter) Confirm(prompt string) (bool, error) {
	if _, writeError := fmt.Fprint(prompter.writer, prompt); writeError != nil {
		return false, writeError
	}
	if !prompter.scanner.Scan() {
		return false, prompter.scanner.Err()
	}
	_, affirmative := affirmativeResponses[strings.ToLower(strings.TrimSpace(prompter.scanner.Text()))]
	return affirmative, nil
}
