package saucedemo

import (
	"fmt"
	"time"

	"github.com/themizzi/storefront-e2e/internal/pages"
)

var (
	usernameInput = dt("username")
	passwordInput = dt("password")
	loginButton   = dt("login-button")
	errorBanner   = dt("error")
)

// LoginPage is the store's landing form.
type LoginPage struct {
	pages.Base
}

func (p *LoginPage) NavigateToLogin() error {
	return p.Goto("/")
}

func (p *LoginPage) Login(username, password string) error {
	if err := p.Fill(usernameInput, username); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := p.Fill(passwordInput, password); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return p.ClickAndWait(loginButton)
}

func (p *LoginPage) ErrorMessage() string {
	_ = p.WaitForElement(errorBanner, 3*time.Second)
	return p.Text(errorBanner)
}

func (p *LoginPage) IsErrorVisible() bool {
	return p.IsVisible(errorBanner)
}

func (p *LoginPage) IsLoginFormVisible() bool {
	return p.IsVisible(usernameInput)
}
