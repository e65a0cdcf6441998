package commands

import (
	"embed"
	"encoding/json"
	"io"
	"path"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	intconfig "github.com/leapstack-labs/primerlint/internal/config"
	"github.com/leapstack-labs/primerlint/internal/runner"
	"github.com/leapstack-labs/primerlint/pkg/lint"
)

//go:embed templates
var templateFS embed.FS

const configTemplate = "templates/primerlint.yaml.tmpl"

// configTemplateData fills the config file template.
type configTemplateData struct {
	Include     []string
	Exclude     []string
	MinSeverity string
	MaxPasses   int
	CachePath   string
	Rules       []lint.RuleInfo
}

// defaultTemplateData describes the built-in defaults and every
// registered rule.
func defaultTemplateData() configTemplateData {
	all := lint.GetAll()
	rules := make([]lint.RuleInfo, len(all))
	for i, r := range all {
		rules[i] = r.Info()
	}
	return configTemplateData{
		Include:     runner.DefaultInclude,
		Exclude:     runner.DefaultExclude,
		MinSeverity: intconfig.DefaultMinSeverity,
		MaxPasses:   intconfig.DefaultMaxPasses,
		CachePath:   intconfig.DefaultCachePath,
		Rules:       rules,
	}
}

// renderConfigTemplate writes the config file for data to w.
func renderConfigTemplate(w io.Writer, data configTemplateData) error {
	tmpl, err := template.New(path.Base(configTemplate)).
		Funcs(template.FuncMap{"yaml": yamlInline}).
		ParseFS(templateFS, configTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, data)
}

// yamlInline encodes v as a single-line YAML value. Values YAML would
// spread over several lines are written in flow style.
func yamlInline(v any) (string, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	s := strings.TrimSpace(string(b))
	if !strings.Contains(s, "\n") {
		return s, nil
	}
	b, err = json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
