package spec_test

// Runs the scenarios in canonical.yaml end to end: parse, scope-resolve,
// and interpret each source, checking it against its expectation.

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/chef-lang/chef/diag"
	"github.com/chef-lang/chef/interp"
	"github.com/chef-lang/chef/parser"
	"github.com/chef-lang/chef/source"
	spec_test "github.com/chef-lang/chef/spec"
)

func Test_Spec(t *testing.T) {
	var specification spec_test.CanonicalTests

	for _, specFile := range []string{"canonical.yaml"} {
		t.Run(specFile, func(t *testing.T) {
			if fileInfo, err := os.Stat(specFile); os.IsNotExist(err) || fileInfo.Size() == 0 {
				t.Skip("Skipping test for spec file", specFile, "because it does not exist or is empty")
			}
			if err := spec_test.ParseSpecFile(specFile, &specification); err != nil {
				t.Fatalf("failed to parse spec file %s: %v", specFile, err)
			}

			for name, tc := range specification.Tests {
				t.Run(name, func(t *testing.T) {
					buf := source.New(name+".chef", []byte(tc.Source))
					sink := diag.New(name+".chef", false, nil)
					prog := parser.New(buf, sink).ParseProgram()

					if tc.Expect.ParseError {
						if !sink.HasErrors() {
							t.Fatalf("expected a parse error, got none")
						}
						return
					}
					if sink.HasErrors() {
						t.Fatalf("unexpected parse errors: %v", sink.Diagnostics())
					}

					var out bytes.Buffer
					err := interp.New(sink, strings.NewReader(tc.Stdin), &out).Run(prog)

					if tc.Expect.RuntimeError {
						if err == nil {
							t.Fatalf("expected a runtime error, got none")
						}
						return
					}
					if err != nil {
						t.Fatalf("unexpected runtime error: %v", err)
					}
					if out.String() != tc.Expect.Stdout {
						t.Errorf("stdout = %q, want %q", out.String(), tc.Expect.Stdout)
					}
				})
			}
		})
	}
}
