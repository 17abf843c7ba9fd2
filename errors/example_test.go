package errors_test

import (
	"fmt"

	"github.com/robinvdvleuten/flux/ast"
	"github.com/robinvdvleuten/flux/errors"
	"github.com/robinvdvleuten/flux/parser"
)

// Example showing how to report parse diagnostics on the command line.
func ExampleTextFormatter() {
	src := "a = 1\nb = (1 + \nc = 3"
	file := parser.ParseFile("query.flux", src)

	var errs []error
	for _, err := range ast.Check(file) {
		errs = append(errs, err)
	}

	formatter := errors.NewTextFormatter(errors.WithSource("query.flux", src))
	fmt.Println(formatter.FormatAll(errs))
}

// Example showing how to hand diagnostics to an editor integration.
func ExampleJSONFormatter() {
	file := parser.ParseFile("query.flux", "f(a: 1, 2)")

	var errs []error
	for _, err := range ast.Check(file) {
		errs = append(errs, err)
	}

	formatter := errors.NewJSONFormatter()
	fmt.Println(formatter.FormatAll(errs))
}
