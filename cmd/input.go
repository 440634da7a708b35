package cmd

import (
	"errors"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/samsaffron/mdir/internal/input"
)

var errNoInput = errors.New("no input: pass files or pipe markdown on stdin")

// readInputs reads the named files, or stdin when none are given. Files
// that could be read are returned even when others failed.
func readInputs(args []string) ([]input.FileContent, error) {
	if len(args) == 0 {
		if !input.HasStdin() {
			return nil, errNoInput
		}
		args = []string{input.StdinPath}
	}

	files, err := input.ReadFiles(args)
	for _, e := range multierr.Errors(err) {
		logger.Warn("input skipped", zap.Error(e))
	}
	if len(files) == 0 && err == nil {
		return nil, errNoInput
	}
	return files, err
}
