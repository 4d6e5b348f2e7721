// Package workdir guards the process working directory around calls
// into collaborators that change it as a side effect.
package workdir

import (
	"errors"
	"fmt"
	"os"
)

// WithRestored snapshots the current working directory, runs action and
// changes back to the snapshot on every exit path, panics included.
// The action's error takes precedence; a failed restore is joined to it.
func WithRestored(action func() error) (err error) {
	saved, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("snapshot working directory: %w", err)
	}

	defer func() {
		if restoreErr := os.Chdir(saved); restoreErr != nil {
			err = errors.Join(err, fmt.Errorf("restore working directory %s: %w", saved, restoreErr))
		}
	}()

	return action()
}
