package driver

import (
	"fmt"
	"io"

	ferrors "finola/internal/errors"
)

// Report writes err for source to w. Syntax errors get the annotated
// snippet; anything else is printed as is.
func Report(w io.Writer, name, source string, err error) {
	ce, ok := ferrors.FromError(err)
	if !ok {
		fmt.Fprintf(w, "%s: %v\n", name, err)
		return
	}
	fmt.Fprint(w, ferrors.NewErrorReporter(name, source).FormatError(ce))
}
