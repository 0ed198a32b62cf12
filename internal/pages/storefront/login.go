package storefront

import (
	"fmt"
	"time"

	"github.com/themizzi/storefront-e2e/internal/pages"
)

var (
	loginEmail    = tid("login-email")
	loginPassword = tid("login-password")
	loginSubmit   = tid("login-submit")
	loginError    = tid("error-message")

	registerLink     = tid("register-link")
	registerButton   = tid("register-button")
	firstNameInput   = tid("first-name")
	lastNameInput    = tid("last-name")
	registerEmail    = tid("register-email")
	registerPassword = tid("register-password")
	confirmPassword  = tid("confirm-password")
	agreeTerms       = tid("agree-terms")

	forgotPasswordLink = tid("forgot-password-link")
	resetEmail         = tid("reset-email")
	resetButton        = tid("reset-button")
	resetConfirmation  = tid("reset-confirmation")
)

const errorMessageWait = 3 * time.Second

// LoginPage drives sign-in, registration and password recovery.
type LoginPage struct {
	pages.Base
}

func NewLoginPage(base pages.Base) *LoginPage {
	return &LoginPage{Base: base}
}

func (p *LoginPage) NavigateToLogin() error {
	return p.Goto("/login")
}

// Login submits the sign-in form and waits for the response to settle.
func (p *LoginPage) Login(identifier, secret string) error {
	if err := p.Fill(loginEmail, identifier); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := p.Fill(loginPassword, secret); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := p.ClickAndWait(loginSubmit); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

// ErrorMessage gives the message up to three seconds to appear, then reads
// it. It returns "" when there is none.
func (p *LoginPage) ErrorMessage() string {
	_ = p.WaitForElement(loginError, errorMessageWait)
	return p.Text(loginError)
}

func (p *LoginPage) IsErrorVisible() bool {
	return p.IsVisible(loginError)
}

func (p *LoginPage) NavigateToRegister() error {
	return p.ClickAndWait(registerLink)
}

// FillRegistrationForm fills the sign-up form. Empty names default to
// "Test" and "User".
func (p *LoginPage) FillRegistrationForm(email, password, firstName, lastName string) error {
	if firstName == "" {
		firstName = "Test"
	}
	if lastName == "" {
		lastName = "User"
	}
	fields := []struct{ selector, value string }{
		{firstNameInput, firstName},
		{lastNameInput, lastName},
		{registerEmail, email},
		{registerPassword, password},
		{confirmPassword, password},
	}
	for _, f := range fields {
		if err := p.Fill(f.selector, f.value); err != nil {
			return fmt.Errorf("fill registration form: %w", err)
		}
	}
	return nil
}

// SubmitRegistration accepts the terms and submits.
func (p *LoginPage) SubmitRegistration() error {
	if err := p.Check(agreeTerms); err != nil {
		return fmt.Errorf("submit registration: %w", err)
	}
	if err := p.ClickAndWait(registerButton); err != nil {
		return fmt.Errorf("submit registration: %w", err)
	}
	return nil
}

func (p *LoginPage) Register(email, password, firstName, lastName string) error {
	if err := p.NavigateToRegister(); err != nil {
		return err
	}
	if err := p.FillRegistrationForm(email, password, firstName, lastName); err != nil {
		return err
	}
	return p.SubmitRegistration()
}

func (p *LoginPage) NavigateToForgotPassword() error {
	return p.ClickAndWait(forgotPasswordLink)
}

func (p *LoginPage) RequestPasswordReset(email string) error {
	if err := p.Fill(resetEmail, email); err != nil {
		return fmt.Errorf("request password reset: %w", err)
	}
	return p.ClickAndWait(resetButton)
}

func (p *LoginPage) IsResetFormVisible() bool {
	return p.IsVisible(resetEmail)
}

func (p *LoginPage) IsResetConfirmationVisible() bool {
	return p.IsVisible(resetConfirmation)
}

func (p *LoginPage) IsLoginFormVisible() bool {
	return p.IsVisible(loginEmail)
}

func (p *LoginPage) IsLoggedIn() bool {
	return isLoggedIn(p.Base)
}
