package main

import (
	"fmt"
	"os"

	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Fprintf(os.Stderr, "ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Fprintf(os.Stderr, "  [%s] %s\n", e.Level, e.Message)
			if e.Subject != "" {
				fmt.Fprintf(os.Stderr, "    -> %s = %v\n", e.Subject, e.ActualValue)
			}
			if e.Expected != "" {
				fmt.Fprintf(os.Stderr, "    expected: %s\n", e.Expected)
			}
			for _, s := range e.Suggestions {
				fmt.Fprintf(os.Stderr, "    * %s\n", s)
			}
		}
		fmt.Fprintln(os.Stderr)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(os.Stderr, "WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Fprintf(os.Stderr, "  [%s] %s\n", w.Level, w.Message)
			if w.Subject != "" {
				fmt.Fprintf(os.Stderr, "    -> %s = %v\n", w.Subject, w.ActualValue)
			}
			for _, s := range w.Suggestions {
				fmt.Fprintf(os.Stderr, "    * %s\n", s)
			}
		}
		fmt.Fprintln(os.Stderr)
	}

	if r.Valid {
		fmt.Fprintf(os.Stderr, "Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Fprintf(os.Stderr, "Result: INVALID (%s)\n", r.Summary)
	}
}
