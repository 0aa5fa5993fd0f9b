package cli

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"

	"github.com/fuzzinit/fuzz-init/internal/app"
	"github.com/fuzzinit/fuzz-init/internal/template/model"
)

// promptProjectName asks for the project (output directory) name.
func promptProjectName() (string, error) {
	var result string
	prompt := &survey.Input{
		Message: "Project name:",
		Help:    "Directory to create; also the default fuzz target name",
	}
	if err := survey.AskOne(prompt, &result, survey.WithValidator(survey.Required)); err != nil {
		return "", fmt.Errorf("failed to prompt for project name: %w", err)
	}
	return result, nil
}

// promptLanguage asks the user to pick an embedded template.
func promptLanguage() (string, error) {
	names, err := app.ListTemplates()
	if err != nil {
		return "", err
	}
	if len(names) == 1 {
		return names[0], nil
	}

	var result string
	prompt := &survey.Select{
		Message: "Language:",
		Options: names,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", fmt.Errorf("failed to prompt for language: %w", err)
	}
	return result, nil
}

// promptIntegration asks the user to pick a build integration from the
// template's catalog. Templates without a catalog skip the prompt.
func promptIntegration(meta *model.Metadata) (string, error) {
	supported := meta.SupportedIntegrations()
	if len(supported) == 0 {
		return "", nil
	}
	if len(supported) == 1 {
		return supported[0], nil
	}

	var options []IntegrationOption
	if meta.Integrations != nil {
		options = integrationOptions(meta.Integrations)
	}
	labels := make([]string, len(supported))
	byLabel := make(map[string]string, len(supported))
	for i, name := range supported {
		label := name
		for _, opt := range options {
			if opt.Name == name && opt.Label != "" {
				label = opt.Label
			}
		}
		labels[i] = label
		byLabel[label] = name
	}

	var result string
	prompt := &survey.Select{
		Message: "Build integration:",
		Options: labels,
	}
	if def := meta.DefaultIntegration(); def != "" {
		for label, name := range byLabel {
			if name == def {
				prompt.Default = label
			}
		}
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", fmt.Errorf("failed to prompt for integration: %w", err)
	}
	return byLabel[result], nil
}

// promptFuzzer asks the user to pick a fuzzer from the template's catalog.
func promptFuzzer(meta *model.Metadata) (string, error) {
	if meta == nil || meta.Fuzzers == nil || len(meta.Fuzzers.Supported) == 0 {
		return "", nil
	}
	supported := meta.Fuzzers.Supported
	if len(supported) == 1 {
		return supported[0], nil
	}

	var result string
	prompt := &survey.Select{
		Message: "Fuzzer:",
		Options: supported,
	}
	if meta.Fuzzers.Default != "" {
		prompt.Default = meta.Fuzzers.Default
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", fmt.Errorf("failed to prompt for fuzzer: %w", err)
	}
	return result, nil
}

// IntegrationOption is a selectable integration with a display label.
type IntegrationOption struct {
	Name  string
	Label string
}

// integrationOptions flattens the catalog options into display choices,
// falling back to the bare name when no display name is declared.
func integrationOptions(catalog *model.IntegrationCatalog) []IntegrationOption {
	opts := make([]IntegrationOption, 0, len(catalog.Options))
	for _, opt := range catalog.Options {
		label := opt.DisplayName
		if label == "" {
			label = opt.Name
		}
		if opt.Description != "" {
			label = fmt.Sprintf("%s - %s", label, opt.Description)
		}
		opts = append(opts, IntegrationOption{Name: opt.Name, Label: label})
	}
	return opts
}
