package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/primerlint/internal/cli"
	"github.com/leapstack-labs/primerlint/internal/cli/config"
)

type commandGroup struct {
	title    string
	intro    string
	names    []string
	commands []*cobra.Command
}

// commandGroups orders the CLI reference by task. Commands not listed
// here are collected under "Other".
var commandGroups = []commandGroup{
	{title: "Linting", intro: "Check sources, apply fixes and explain rules.", names: []string{"lint", "doctor", "rules"}},
	{title: "Setup", intro: "Create the project configuration.", names: []string{"init"}},
	{title: "Editor Integration", intro: "Serve diagnostics and quick fixes to editors.", names: []string{"lsp"}},
}

// optionRow is one line of an options table, shared by CLI flags and
// rule options.
type optionRow struct {
	name string
	typ  string
	def  string
	desc string
}

func writeOptionTable(w *MarkdownWriter, first string, rows []optionRow) {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{r.name, r.typ, r.def, r.desc}
	}
	w.Table([]string{first, "Type", "Default", "Description"}, out)
}

// generateCLIDocs writes an index of the command groups and one page per
// command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	commands := documentedCommands(root)

	if err := generateCLIIndex(root, groupCommands(commands), outDir); err != nil {
		return fmt.Errorf("failed to generate index: %w", err)
	}
	log.Printf("  Generated index.md")

	for _, cmd := range commands {
		if err := generateCommandPage(cmd, outDir); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", cmd.Name(), err)
		}
		log.Printf("  Generated %s.md", cmd.Name())
	}
	return nil
}

func documentedCommands(root *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.Hidden || cmd.Name() == "help" {
			continue
		}
		out = append(out, cmd)
	}
	return out
}

// groupCommands places each command in its group, keeping the group
// order. Empty groups are dropped.
func groupCommands(commands []*cobra.Command) []commandGroup {
	groups := make([]commandGroup, len(commandGroups))
	copy(groups, commandGroups)
	other := commandGroup{title: "Other", intro: "Version and shell completion."}

	for _, cmd := range commands {
		placed := false
		for i := range groups {
			for _, name := range groups[i].names {
				if cmd.Name() == name {
					groups[i].commands = append(groups[i].commands, cmd)
					placed = true
				}
			}
		}
		if !placed {
			other.commands = append(other.commands, cmd)
		}
	}

	out := make([]commandGroup, 0, len(groups)+1)
	for _, g := range append(groups, other) {
		if len(g.commands) > 0 {
			out = append(out, g)
		}
	}
	return out
}

func generateCLIIndex(root *cobra.Command, groups []commandGroup, outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("CLI Reference", "Command-line interface reference for primerlint")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("primerlint lints JavaScript and TypeScript sources that use Primer React, fixes what it safely can, and serves editors over the Language Server Protocol.")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/primerlint/cmd/primerlint@latest\nprimerlint lint --fix src/")

	for _, g := range groups {
		w.Header(2, g.title)
		w.Paragraph(g.intro)
		var rows [][]string
		for _, cmd := range g.commands {
			rows = append(rows, []string{
				fmt.Sprintf("[%s](%s.md)", InlineCode(cmd.Name()), cmd.Name()),
				InlineCode(cmd.UseLine()),
				cleanDescription(cmd.Short),
			})
		}
		w.Table([]string{"Command", "Usage", "Description"}, rows)
	}

	w.Header(2, "Global Options")
	writeOptionTable(w, "Flag", flagRows(root.PersistentFlags()))

	w.Header(2, "Environment Variables")
	w.Paragraph(fmt.Sprintf("Scalar configuration keys can be set with a %s variable. A double underscore separates nested keys. Flags take precedence over the environment.",
		InlineCode(config.EnvPrefix)))
	var envRows [][]string
	for _, v := range envVariables() {
		envRows = append(envRows, []string{InlineCode(v.name), InlineCode(v.key), v.desc})
	}
	w.Table([]string{"Variable", "Key", "Description"}, envRows)

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "No issues left, or the command succeeded"},
		{InlineCode("1"), "Lint issues found, a file failed to parse, or an error (details on stderr)"},
	})

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

type envVariable struct {
	name string
	key  string
	desc string
}

// envVariables derives the environment names of the scalar keys in the
// configuration schema.
func envVariables() []envVariable {
	var out []envVariable
	for _, f := range getConfigSchema() {
		if strings.HasPrefix(f.Type, "[]") || strings.HasPrefix(f.Type, "map") {
			continue
		}
		key, env := f.Name, f.Name
		if f.Category != "general" {
			key = f.Category + "." + f.Name
			env = f.Category + "__" + f.Name
		}
		out = append(out, envVariable{
			name: config.EnvPrefix + strings.ToUpper(env),
			key:  key,
			desc: f.Description,
		})
	}
	return out
}

func generateCommandPage(cmd *cobra.Command, outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	desc := cmd.Long
	if desc == "" {
		desc = cmd.Short
	}
	w.Paragraph(desc)

	w.Header(2, "Usage")
	w.CodeBlock("bash", cmd.UseLine())

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		writeOptionTable(w, "Flag", flagRows(cmd.LocalFlags()))
	}
	if cmd.HasInheritedFlags() {
		w.Header(2, "Global Options")
		writeOptionTable(w, "Flag", flagRows(cmd.InheritedFlags()))
	}
	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", dedent(cmd.Example))
	}

	return os.WriteFile(filepath.Join(outDir, cmd.Name()+".md"), w.Bytes(), 0600)
}

func flagRows(flags *pflag.FlagSet) []optionRow {
	var rows []optionRow
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		name := InlineCode("--" + f.Name)
		if f.Shorthand != "" {
			name = InlineCode("-"+f.Shorthand) + ", " + name
		}
		def := "-"
		if f.DefValue != "" && f.DefValue != "[]" {
			def = InlineCode(f.DefValue)
		}
		rows = append(rows, optionRow{name: name, typ: f.Value.Type(), def: def, desc: cleanDescription(f.Usage)})
	})
	return rows
}

// dedent strips the indentation shared by every non-blank line.
func dedent(s string) string {
	lines := strings.Split(strings.Trim(s, "\n"), "\n")
	prefix := ""
	found := false
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		p := l[:len(l)-len(strings.TrimLeft(l, " \t"))]
		if !found || len(p) < len(prefix) {
			prefix, found = p, true
		}
	}
	for i, l := range lines {
		lines[i] = strings.TrimPrefix(l, prefix)
	}
	return strings.TrimRight(strings.Join(lines, "\n"), " \n")
}
