package commands

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// templateFuncs provides utility functions for templates.
var templateFuncs = sprig.TxtFuncMap()

// ExpandTemplate expands a template string using the provided data.
// The data can be any struct - templates access fields via {{ .FieldName }}.
func ExpandTemplate(tmplStr string, data any) (string, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

// expandInputTemplate expands a template string using InputContext (Pass 1).
// This substitutes input values into config strings before handler execution.
func expandInputTemplate(tmplStr string, ctx *InputContext) (string, error) {
	// Quick check: if no template markers, return as-is
	if !strings.Contains(tmplStr, "{{") {
		return tmplStr, nil
	}

	return ExpandTemplate(tmplStr, ctx)
}

// renderView expands the command's template override, falling back to def
// (Pass 2).
func renderView(cmdCtx *CommandContext, def string, data any) (string, error) {
	tmpl := def
	if override := cmdCtx.Config[TemplateKey]; override != "" {
		tmpl = override
	}
	return ExpandTemplate(tmpl, data)
}

// validateTemplateConfig checks that an optional template override parses.
func validateTemplateConfig(config map[string]any) error {
	raw, ok := config[TemplateKey]
	if !ok {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		return fmt.Errorf("%s must be a string", TemplateKey)
	}
	if _, err := template.New("").Funcs(templateFuncs).Parse(s); err != nil {
		return fmt.Errorf("%s: %w", TemplateKey, err)
	}
	return nil
}
