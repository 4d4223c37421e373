package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formkit/pkg/form"
)

var (
	ErrInvalidScript = errors.New("invalid script")
	ErrInvalidStep   = errors.New("invalid step")
)

// Script is a recorded form session.
type Script struct {
	Form    string            `yaml:"form"`
	Mode    string            `yaml:"mode"`
	Taken   []string          `yaml:"taken"`
	SignIn  string            `yaml:"signin"`
	Reset   string            `yaml:"reset"`
	Prefill map[string]string `yaml:"prefill"`
	Steps   []Step            `yaml:"steps"`
}

// Step is exactly one of an edit, a pause or an action.
type Step struct {
	Set    *SetStep      `yaml:"set"`
	Wait   time.Duration `yaml:"wait"`
	Action string        `yaml:"action"`
}

type SetStep struct {
	Field string `yaml:"field"`
	Value string `yaml:"value"`
}

const (
	actionSubmit        = "submit"
	actionSignIn        = "sign-in"
	actionResetPassword = "reset-password"
	actionRequestReset  = "request-reset"
	actionCancelReset   = "cancel-reset"
)

func loadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return parseScript(data)
}

func parseScript(data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Join(ErrInvalidScript, err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Script) validate() error {
	if _, err := form.ParseVariant(s.Form); err != nil {
		return errors.Join(ErrInvalidScript, err)
	}
	if _, err := form.ParseMode(s.Mode); err != nil {
		return errors.Join(ErrInvalidScript, err)
	}
	if s.SignIn != "" {
		if _, err := form.ParseSignInOutcome(s.SignIn); err != nil {
			return errors.Join(ErrInvalidScript, err)
		}
	}
	if s.Reset != "" {
		if _, err := form.ParseResetOutcome(s.Reset); err != nil {
			return errors.Join(ErrInvalidScript, err)
		}
	}
	for name := range s.Prefill {
		if f, err := form.ParseField(name); err != nil || (f != form.FieldUsername && f != form.FieldFullname) {
			return fmt.Errorf("%w: prefill %q", ErrInvalidScript, name)
		}
	}
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func (st Step) validate() error {
	set := 0
	if st.Set != nil {
		set++
		if _, err := form.ParseField(st.Set.Field); err != nil {
			return errors.Join(ErrInvalidStep, err)
		}
	}
	if st.Wait != 0 {
		set++
		if st.Wait < 0 {
			return fmt.Errorf("%w: negative wait %s", ErrInvalidStep, st.Wait)
		}
	}
	if st.Action != "" {
		set++
		switch st.Action {
		case actionSubmit, actionSignIn, actionResetPassword, actionRequestReset, actionCancelReset:
		default:
			return fmt.Errorf("%w: unknown action %q", ErrInvalidStep, st.Action)
		}
	}
	if set != 1 {
		return fmt.Errorf("%w: want exactly one of set, wait, action", ErrInvalidStep)
	}
	return nil
}
