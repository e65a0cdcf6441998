// Package imports provides rules that normalize where Primer components
// are imported from.
//
// Rules in this package:
//   - no-experimental-imports: promoted components move to their stable entrypoint
//   - no-wildcard-imports: internal build paths are replaced by public entrypoints
package imports
