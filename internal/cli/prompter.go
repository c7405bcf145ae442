package cli

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrInterrupted is returned by prompters when the user aborts with Ctrl-C.
var ErrInterrupted = errors.New("interrupted")

// Prompter asks the user one question at a time.
type Prompter interface {
	// Select returns the index of the chosen option.
	Select(message string, options []string) (int, error)
	// Input re-asks until validate accepts the answer. validate may be nil.
	Input(message string, validate func(string) error) (string, error)
	Confirm(message string) (bool, error)
	// Secret reads a value without echoing it.
	Secret(message string) (string, error)
}

// SurveyPrompter is the terminal Prompter.
type SurveyPrompter struct {
	PageSize int
}

func NewSurveyPrompter() *SurveyPrompter {
	return &SurveyPrompter{PageSize: 25}
}

func (p *SurveyPrompter) Select(message string, options []string) (int, error) {
	var idx int
	err := survey.AskOne(&survey.Select{
		Message:  message,
		Options:  options,
		PageSize: p.PageSize,
	}, &idx)
	return idx, surveyErr(err)
}

func (p *SurveyPrompter) Input(message string, validate func(string) error) (string, error) {
	var opts []survey.AskOpt
	if validate != nil {
		opts = append(opts, survey.WithValidator(func(ans any) error {
			s, _ := ans.(string)
			return validate(s)
		}))
	}

	var out string
	err := survey.AskOne(&survey.Input{Message: message}, &out, opts...)
	return out, surveyErr(err)
}

func (p *SurveyPrompter) Confirm(message string) (bool, error) {
	var ok bool
	err := survey.AskOne(&survey.Confirm{Message: message}, &ok)
	return ok, surveyErr(err)
}

func (p *SurveyPrompter) Secret(message string) (string, error) {
	var out string
	err := survey.AskOne(&survey.Password{Message: message}, &out, survey.WithValidator(survey.Required))
	return out, surveyErr(err)
}

func surveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrInterrupted
	}
	return err
}
