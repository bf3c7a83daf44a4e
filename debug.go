package weave

import (
	"fmt"
	"os"
)

// debugf prints one interaction decision to stderr. Only active when the
// editor is in debug mode (see SetDebugMode).
func (ed *EditorContext) debugf(format string, args ...any) {
	if !ed.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[weave] "+format+"\n", args...)
}
