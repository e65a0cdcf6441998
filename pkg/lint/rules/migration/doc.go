// Package migration provides rules that move code off deprecated styling
// APIs.
//
// Rules in this package:
//   - no-system-props: styled-system props move into sx
//   - no-unmerged-classname: className next to a spread must merge the spread's className
package migration
