package ui

import (
	"github.com/AlecAivazis/survey/v2"
)

const (
	AuthOptionKey     = "Use an SSH key file"
	AuthOptionCommand = "Enter a custom ssh command"
)

// PromptIdentityInfo prompts for the name and email of a new identity
func PromptIdentityInfo() (name, email string, err error) {
	namePrompt := &survey.Input{
		Message: "Full name:",
		Help:    "Your full name for git commits (e.g., John Doe)",
	}
	if err := survey.AskOne(namePrompt, &name, survey.WithValidator(survey.Required)); err != nil {
		return "", "", err
	}

	emailPrompt := &survey.Input{
		Message: "Email address:",
		Help:    "Your email for git commits (e.g., john@example.com)",
	}
	if err := survey.AskOne(emailPrompt, &email, survey.WithValidator(survey.Required)); err != nil {
		return "", "", err
	}

	return name, email, nil
}

// PromptAuthMethod prompts for how the identity authenticates
func PromptAuthMethod() (string, error) {
	var choice string
	prompt := &survey.Select{
		Message: "How does this identity authenticate?",
		Options: []string{
			AuthOptionKey,
			AuthOptionCommand,
		},
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return "", err
	}
	return choice, nil
}

// PromptKeyPath prompts for an SSH private key path
func PromptKeyPath() (string, error) {
	var path string
	prompt := &survey.Input{
		Message: "Path to SSH private key:",
		Help:    "Full path to your private key file (e.g., ~/.ssh/id_ed25519)",
	}
	if err := survey.AskOne(prompt, &path, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}
	return path, nil
}

// PromptSSHCommand prompts for a verbatim ssh command
func PromptSSHCommand() (string, error) {
	var command string
	prompt := &survey.Input{
		Message: "ssh command:",
		Help:    "Full ssh invocation written to core.sshCommand (e.g., ssh -i ~/.ssh/work)",
	}
	if err := survey.AskOne(prompt, &command, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}
	return command, nil
}

// PromptConfirmation prompts for yes/no confirmation
func PromptConfirmation(message string) (bool, error) {
	var confirmed bool
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}
	if err := survey.AskOne(prompt, &confirmed); err != nil {
		return false, err
	}
	return confirmed, nil
}
