// Package executor performs form input on the live page.
package executor

import (
	"errors"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
)

// ErrNoField reports that no field on the page matches the requested name or id.
var ErrNoField = errors.New("field not found")

// submitForm submits the element's form, if it has one. Enter in a
// textarea inserts a newline instead of submitting.
const submitForm = `() => {
	const form = this.form;
	if (!form) return false;
	if (form.requestSubmit) form.requestSubmit(); else form.submit();
	return true;
}`

// Fill locates the field named (or with id) target, replaces its contents
// with value and submits it, waiting for any navigation that triggers.
// Inputs are submitted with Enter, textareas through their form.
// Timeouts come from page's context.
func Fill(page *rod.Page, target, value string) error {
	el, f, err := locate(page, target)
	if err != nil {
		return err
	}

	// Prefilled fields (a results page's query box) must be replaced,
	// so select the existing text and type over it.
	if err := el.Focus(); err != nil {
		return fmt.Errorf("focus %s: %w", target, err)
	}
	if err := el.SelectAllText(); err != nil {
		return fmt.Errorf("select %s: %w", target, err)
	}
	if value == "" {
		err = page.Keyboard.Type(input.Backspace)
	} else {
		err = page.InsertText(value)
	}
	if err != nil {
		return fmt.Errorf("type into %s: %w", target, err)
	}

	wait := page.WaitNavigation(proto.PageLifecycleEventNameLoad)
	if f.textarea {
		res, err := el.Eval(submitForm)
		if err != nil {
			return fmt.Errorf("submit %s: %w", target, err)
		}
		if !res.Value.Bool() {
			// Nothing will navigate.
			return nil
		}
	} else if err := page.Keyboard.Type(input.Enter); err != nil {
		return fmt.Errorf("submit %s: %w", target, err)
	}
	wait()
	return nil
}

func locate(page *rod.Page, target string) (*rod.Element, field, error) {
	for _, f := range fieldSelectors(target) {
		found, el, err := page.Has(f.selector)
		if err != nil {
			return nil, f, fmt.Errorf("query %s: %w", f.selector, err)
		}
		if found {
			return el, f, nil
		}
	}
	return nil, field{}, fmt.Errorf("%w: %q", ErrNoField, target)
}
