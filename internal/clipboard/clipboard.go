// Package clipboard delivers rendered structure output to the system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"
)

// Copier accepts rendered output for clipboard delivery. The CLI depends on
// this interface so tests can substitute a recording implementation.
type Copier interface {
	Copy(text string) error
}

// SystemCopier writes to the real system clipboard via github.com/atotto/clipboard.
type SystemCopier struct{}

// NewSystemCopier constructs the production clipboard copier.
func NewSystemCopier() *SystemCopier {
	return &SystemCopier{}
}

// Copy places the rendered output on the system clipboard, replacing its
// previous contents.
func (copier *SystemCopier) Copy(text string) error {
	return clipboard.WriteAll(text)
}

var _ Copier = (*SystemCopier)(nil)
