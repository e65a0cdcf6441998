// Package deprecated provides rules for deprecated color tokens, CSS
// color variables and component props.
//
// Rules in this package:
//   - no-deprecated-colors: theme color tokens replaced by functional colors
//   - new-css-color-vars: --color-* variables gain a fallback to the new names
//   - no-deprecated-props: renamed props are renamed, removed props dropped
package deprecated
