package starlark

import (
	"fmt"
	"io"

	"go.starlark.net/starlark"
)

// newThread creates a thread whose print() writes one line per call to out.
func newThread(name string, out io.Writer) *starlark.Thread {
	return &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			if out != nil {
				_, _ = fmt.Fprintln(out, msg)
			}
		},
	}
}
