// Package style provides rules for how styles are referenced from
// components.
package style
