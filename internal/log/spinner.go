package log

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// WithSpinner executes fn while showing a spinner with the given message on stderr.
// Without a terminal fn runs silently.
func WithSpinner(message string, fn func() error) error {
	if color.NoColor {
		return fn()
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message

	if err := s.Color("green"); err != nil {
		return fmt.Errorf("coloring green: %w", err)
	}

	s.Start()

	err := fn()
	if err != nil {
		s.FinalMSG = message + " " + color.RedString("[failed]") + "\n"
	} else {
		s.FinalMSG = message + " " + color.GreenString("[done]") + "\n"
	}
	s.Stop()

	return err
}
