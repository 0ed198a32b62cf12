package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/themizzi/storefront-e2e/internal/services"
)

const (
	msgInvalidLogin = "Invalid email or password"
	msgLockedOut    = "Sorry, this user has been locked out."
)

// AuthHandler serves sign-in, registration, password recovery and sign-out.
type AuthHandler struct {
	view     view
	auth     *services.AuthService
	sessions *Sessions
	log      *log.Logger
}

func NewAuthHandler(v view, auth *services.AuthService, sessions *Sessions, logger *log.Logger) *AuthHandler {
	return &AuthHandler{view: v, auth: auth, sessions: sessions, log: logger}
}

type loginView struct {
	Page
	Error      string
	Notice     string
	Identifier string
}

type registerForm struct {
	FirstName  string
	LastName   string
	Identifier string
}

type registerView struct {
	Page
	Error string
	Form  registerForm
}

type forgotView struct {
	Page
	Sent  bool
	Email string
	Error string
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	data := loginView{Page: h.view.page(r, "Sign in")}
	if r.URL.Query().Get("registered") != "" {
		data.Notice = "Account created, please sign in"
	}
	h.view.Render(w, http.StatusOK, "login", data)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	identifier := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	user, err := h.auth.Authenticate(identifier, password)
	if err != nil {
		message := msgInvalidLogin
		if errors.Is(err, services.ErrLockedOut) {
			message = msgLockedOut
		}
		h.log.Info("Sign in rejected", "identifier", identifier, "err", err)
		h.view.Render(w, http.StatusUnauthorized, "login", loginView{
			Page:       h.view.page(r, "Sign in"),
			Error:      message,
			Identifier: identifier,
		})
		return
	}

	if err := h.sessions.SignIn(w, user); err != nil {
		h.log.Error("Error issuing token", "identifier", identifier, "err", err)
		http.Error(w, "Failed to sign in", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, http.StatusOK, "register", registerView{Page: h.view.page(r, "Create account")})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	form := registerForm{
		FirstName:  strings.TrimSpace(r.FormValue("first_name")),
		LastName:   strings.TrimSpace(r.FormValue("last_name")),
		Identifier: strings.TrimSpace(r.FormValue("email")),
	}

	fail := func(message string) {
		h.view.Render(w, http.StatusBadRequest, "register", registerView{
			Page:  h.view.page(r, "Create account"),
			Error: message,
			Form:  form,
		})
	}

	if r.FormValue("agree_terms") == "" {
		fail("You must accept the terms and conditions")
		return
	}

	user, err := h.auth.Register(form.Identifier, r.FormValue("password"), r.FormValue("confirm_password"), form.FirstName, form.LastName)
	switch {
	case errors.Is(err, services.ErrUserExists):
		fail("An account with this email already exists")
		return
	case err != nil:
		fail(capitalize(err.Error()))
		return
	}

	if err := h.sessions.SignIn(w, user); err != nil {
		h.log.Error("Error issuing token", "identifier", user.Identifier, "err", err)
		http.Redirect(w, r, "/login?registered=1", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) ForgotPage(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, http.StatusOK, "forgot", forgotView{Page: h.view.page(r, "Reset password")})
}

func (h *AuthHandler) Forgot(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	data := forgotView{Page: h.view.page(r, "Reset password"), Email: email}
	if email == "" {
		data.Error = "Email is required"
		h.view.Render(w, http.StatusBadRequest, "forgot", data)
		return
	}
	h.auth.RequestPasswordReset(email)
	data.Sent = true
	h.view.Render(w, http.StatusOK, "forgot", data)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.SignOut(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
