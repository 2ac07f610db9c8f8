package mini

import (
	"github.com/AlecAivazis/survey/v2"
	"github.com/ytune-cli/ytune/query"
)

// prompter asks the user for input. Tests replace it with a script.
type prompter interface {
	input(message string) (string, error)
	choose(message string, options []string) (int, error)
}

type surveyPrompter struct{}

func (surveyPrompter) input(message string) (string, error) {
	var response string
	prompt := &survey.Input{
		Message: message,
		Suggest: query.SuggestMany,
	}

	err := survey.AskOne(prompt, &response)
	return response, err
}

func (surveyPrompter) choose(message string, options []string) (int, error) {
	var index int
	prompt := &survey.Select{
		Message:  message,
		Options:  options,
		PageSize: truncateAt,
	}

	err := survey.AskOne(prompt, &index)
	return index, err
}
