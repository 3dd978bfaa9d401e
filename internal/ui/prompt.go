// ABOUTME: Interactive prompt UI functions for user input
// ABOUTME: Handles yes/no confirmations before destructive file operations
package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pipekit/pipekit/internal/config"
)

var in io.Reader = os.Stdin

// SetInput redirects prompt input. Passing nil restores stdin.
func SetInput(r io.Reader) {
	if r == nil {
		r = os.Stdin
	}
	in = r
}

// ConfirmYesNo prompts for Y/n confirmation
func ConfirmYesNo(prompt string) (bool, error) {
	if config.YesFlag {
		return true, nil
	}

	fmt.Fprintf(out, "%s [Y/n]: ", prompt)

	input, err := readAnswer()
	if err != nil {
		return false, err
	}

	return input == "" || input == "y" || input == "yes", nil
}

func readAnswer() (string, error) {
	reader := bufio.NewReader(in)
	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return "", err
	}
	return strings.TrimSpace(strings.ToLower(input)), nil
}
