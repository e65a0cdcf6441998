// Package a11y provides accessibility rules for Primer components.
//
// Rules in this package:
//   - a11y-tooltip-interactive-trigger: Tooltip must wrap an interactive element
//   - a11y-link-in-text-block: Link inside prose needs the inline prop
//   - a11y-explicit-heading: Heading needs an explicit h1-h6 level
package a11y
