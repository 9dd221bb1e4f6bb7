package repl

import (
	"fmt"
)

func (r *REPL) displayList() {
	fmt.Fprintln(r.out, r.formatter.FormatTable(r.collection.Entries()))
	fmt.Fprintln(r.out)
}

func (r *REPL) displayError(err error) {
	fmt.Fprintln(r.out, r.formatter.FormatError(err))
	fmt.Fprintln(r.out)
}

func (r *REPL) displayWelcome() {
	fmt.Fprint(r.out, r.formatter.FormatWelcome(r.config.StoragePath(), r.collection.Len()))
}

func (r *REPL) displayHelp() {
	fmt.Fprint(r.out, r.formatter.FormatHelp())
}

func (r *REPL) displaySystem(msg string) {
	fmt.Fprintln(r.out, r.formatter.FormatSystem(msg))
}
