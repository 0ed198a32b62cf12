package saucedemo

import (
	"fmt"

	"github.com/themizzi/storefront-e2e/internal/dataset"
	"github.com/themizzi/storefront-e2e/internal/pages"
)

const completeHeader = ".complete-header"

var (
	firstName      = dt("firstName")
	lastName       = dt("lastName")
	postalCode     = dt("postalCode")
	continueButton = dt("continue")
	cancelButton   = dt("cancel")
	finishButton   = dt("finish")
)

// CheckoutPage covers the information, overview and complete steps.
type CheckoutPage struct {
	pages.Base
}

func (p *CheckoutPage) FillInformation(first, last, zip string) error {
	for _, f := range []struct{ selector, value string }{
		{firstName, first},
		{lastName, last},
		{postalCode, zip},
	} {
		if err := p.Fill(f.selector, f.value); err != nil {
			return fmt.Errorf("fill checkout information: %w", err)
		}
	}
	return nil
}

func (p *CheckoutPage) Continue() error {
	return p.ClickAndWait(continueButton)
}

func (p *CheckoutPage) Cancel() error {
	return p.ClickAndWait(cancelButton)
}

func (p *CheckoutPage) Finish() error {
	return p.ClickAndWait(finishButton)
}

// Title reads the step heading, e.g. "Checkout: Overview".
func (p *CheckoutPage) Title() string {
	return p.Text(pageTitle)
}

func (p *CheckoutPage) CompleteHeader() string {
	return p.Text(completeHeader)
}

func (p *CheckoutPage) ErrorMessage() string {
	return p.Text(errorBanner)
}

func (p *CheckoutPage) IsErrorVisible() bool {
	return p.IsVisible(errorBanner)
}

// Complete fills the information step from payload, continues to the
// overview and finishes the order.
func (p *CheckoutPage) Complete(payload dataset.CheckoutPayload) error {
	if err := p.FillInformation(payload.FirstName, payload.LastName, payload.ZipCode); err != nil {
		return err
	}
	if err := p.Continue(); err != nil {
		return fmt.Errorf("complete checkout: %w", err)
	}
	if err := p.Finish(); err != nil {
		return fmt.Errorf("complete checkout: %w", err)
	}
	return nil
}
