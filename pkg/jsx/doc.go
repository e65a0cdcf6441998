// Package jsx defines the syntax tree consumed by the lint rules.
//
// The tree is a closed sum type: every node kind is a struct implementing
// Node, and code that handles nodes switches over the concrete types.
// Nodes carry half-open byte spans into the original source and a parent
// back reference set by Link.
//
// A File also owns the lexical scope tree built by the parser. Scopes map
// names to Bindings; import bindings remember the module they came from so
// rules can tell `import {Box} from "@primer/react"` apart from a local Box.
//
// The package imports only the standard library. Parsing lives in
// pkg/jsx/parser.
package jsx
