package spec

// CanonicalTests is the top-level shape of canonical.yaml: a named table
// of end-to-end scenarios exercising the parser, scope resolver, and
// interpreter together, the way the original cheffe project's own
// test/CheffeJITExecutionTest.cpp exercises its pipeline.
type CanonicalTests struct {
	Tests map[string]Test `yaml:"tests"`
}

// Test is one scenario: a complete .chef source file, the input it
// should be fed on stdin for any Take steps, and what it is expected to
// produce.
type Test struct {
	Source string      `yaml:"source"`
	Stdin  string      `yaml:"stdin"`
	Expect Expectation `yaml:"expect"`
}

// Expectation describes one of three outcomes a scenario can assert:
// a successful run producing exact stdout, a parse-time failure, or a
// run-time failure. Exactly one of Stdout (success path) or the two
// error flags should be meaningful for a given scenario.
type Expectation struct {
	Stdout       string `yaml:"stdout"`
	ParseError   bool   `yaml:"parse_error"`
	RuntimeError bool   `yaml:"runtime_error"`
}
