// Package rules provides the built-in lint rules for quill.
//
// # Rule Groups
//
//   - suspicious: code that is most likely wrong or left over from debugging.
//
//   - no-debugger: debugger statements (fix: remove the statement)
//
//   - no-compare-neg-zero: comparisons against -0 (fix: compare against 0)
//
//   - no-double-equals: == and != (fix: use === and !==)
//
//   - no-empty-block: blocks without statements or comments
//
//   - style: code that works but has a better spelling.
//
//   - no-var: var declarations (fix: let, where the change keeps the meaning)
//
// Rules register themselves with lint.DefaultRegistry on import. ESLint
// names are registered as aliases, so "eqeqeq" configures no-double-equals.
package rules
