// Package structure provides lint rules about how Primer components are
// composed.
//
// Rules in this package:
//   - direct-slot-children: slot components must be direct children of their parent
package structure
