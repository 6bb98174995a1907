package pages

import (
	"context"

	"github.com/a-h/templ"

	"github.com/mmuslimabdulj/city-pulse/internal/domain"
	"github.com/mmuslimabdulj/city-pulse/internal/usecase"
	"github.com/mmuslimabdulj/city-pulse/view/components"
)

type inputSpec struct {
	field       domain.Field
	label       string
	kind        string
	placeholder string
}

var signInInputs = []inputSpec{
	{domain.FieldEmail, "Email Address", "email", "you@example.com"},
	{domain.FieldPassword, "Password", "password", "••••••••"},
}

var signUpInputs = []inputSpec{
	{domain.FieldFirstName, "First Name", "text", "John"},
	{domain.FieldLastName, "Last Name", "text", "Doe"},
	{domain.FieldEmail, "Email Address", "email", "you@example.com"},
	{domain.FieldPassword, "Password", "password", "••••••••"},
	{domain.FieldConfirmPassword, "Confirm Password", "password", "••••••••"},
}

// Auth is the sign-in/sign-up page. notice is the flash notice to show once,
// nil when there is none.
func Auth(v usecase.AuthFormView, notice *domain.Notice, features []domain.Feature, bg domain.Background) templ.Component {
	body := components.Component(func(ctx context.Context, h *components.HTML) {
		h.Raw(`<main class="relative z-10 auth-grid">`)

		h.Raw(`<aside class="auth-hero"><h1 class="text-2xl font-bold text-blue-800">City Pulse</h1>`)
		h.Render(ctx, components.FeatureCards(features, 0))
		h.Raw(`</aside>`)

		h.Raw(`<section class="auth-panel card"`)
		h.Attr("data-mode", string(v.Mode))
		h.Attr("data-state", v.State.String())
		h.Raw(`><p class="text-blue-700 font-medium">`)
		if v.Mode == domain.ModeSignIn {
			h.Text("Welcome back! Sign in to your account")
		} else {
			h.Text("Join the community! Create your account")
		}
		h.Raw(`</p>`)

		renderModeSwitch(h, v.Mode)
		h.Render(ctx, components.NoticeBanner(notice))
		renderForm(h, v)

		h.Raw(`</section></main>`)
	})
	title := "Sign In"
	if v.Mode == domain.ModeSignUp {
		title = "Sign Up"
	}
	return components.Layout(title, bg, body)
}

func renderModeSwitch(h *components.HTML, mode domain.Mode) {
	h.Raw(`<form method="post" action="/auth/mode" class="mode-switch">`)
	h.Attr("data-next-mode", string(mode.Toggle()))
	h.Raw(`><button type="submit" class="link">`)
	if mode == domain.ModeSignIn {
		h.Text("Don't have an account? Sign up")
	} else {
		h.Text("Already have an account? Sign in")
	}
	h.Raw(`</button></form>`)
}

func renderForm(h *components.HTML, v usecase.AuthFormView) {
	inputs := signInInputs
	if v.Mode == domain.ModeSignUp {
		inputs = signUpInputs
	}

	h.Raw(`<form method="post" action="/auth" id="auth-form" novalidate>`)
	h.Raw(`<input type="hidden" name="mode"`)
	h.Attr("value", string(v.Mode))
	h.Raw(`>`)

	for _, in := range inputs {
		// Passwords are never echoed back into the page
		value := v.Fields.Get(in.field)
		if in.kind == "password" {
			value = ""
		}
		renderInput(h, in, value, v.Errors.Get(in.field), v.Submitting())
	}
	if v.Mode == domain.ModeSignUp {
		renderRoleSelect(h, v.Fields.Role, v.Errors.Get(domain.FieldRole), v.Submitting())
	}

	h.Raw(`<button type="submit" class="btn-primary w-full"`)
	if v.Submitting() {
		h.Raw(` disabled aria-busy="true"><span class="spinner"></span><span>`)
		if v.Mode == domain.ModeSignIn {
			h.Text("Signing in...")
		} else {
			h.Text("Creating Account...")
		}
	} else {
		h.Raw(`><span>`)
		if v.Mode == domain.ModeSignIn {
			h.Text("Access City Pulse")
		} else {
			h.Text("Join City Pulse")
		}
	}
	h.Raw(`</span></button></form>`)
}

func renderInput(h *components.HTML, in inputSpec, value, errMsg string, disabled bool) {
	id := "field-" + string(in.field)
	h.Raw(`<div class="field"><label class="block text-sm font-semibold text-gray-700 mb-2"`)
	h.Attr("for", id)
	h.Raw(`>`)
	h.Text(in.label)
	h.Raw(`</label><input`)
	h.Attr("id", id)
	h.Attr("name", string(in.field))
	h.Attr("type", in.kind)
	h.Attr("placeholder", in.placeholder)
	h.Attr("value", value)
	if errMsg != "" {
		h.Raw(` class="input input-error" aria-invalid="true"`)
	} else {
		h.Raw(` class="input"`)
	}
	if disabled {
		h.Raw(` disabled`)
	}
	h.Raw(`>`)
	renderFieldError(h, in.field, errMsg)
	h.Raw(`</div>`)
}

func renderRoleSelect(h *components.HTML, selected domain.Role, errMsg string, disabled bool) {
	h.Raw(`<div class="field"><label class="block text-sm font-semibold text-gray-700 mb-2" for="field-role">I am a</label>`)
	h.Raw(`<select id="field-role" name="role" class="input"`)
	if disabled {
		h.Raw(` disabled`)
	}
	h.Raw(`>`)
	for _, opt := range domain.RoleOptions {
		h.Raw(`<option`)
		h.Attr("value", string(opt.Role))
		if opt.Role == selected {
			h.Raw(` selected`)
		}
		h.Raw(`>`)
		h.Text(opt.Description)
		h.Raw(`</option>`)
	}
	h.Raw(`</select>`)
	renderFieldError(h, domain.FieldRole, errMsg)
	h.Raw(`</div>`)
}

// renderFieldError always writes the slot so the page script can fill it
// after a field-change round trip
func renderFieldError(h *components.HTML, field domain.Field, msg string) {
	h.Raw(`<p class="text-sm text-red-600 mt-1 field-error"`)
	h.Attr("data-error-for", string(field))
	h.Raw(`>`)
	h.Text(msg)
	h.Raw(`</p>`)
}
