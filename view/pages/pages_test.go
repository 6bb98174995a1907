package pages

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmuslimabdulj/city-pulse/internal/dashboard"
	"github.com/mmuslimabdulj/city-pulse/internal/domain"
	"github.com/mmuslimabdulj/city-pulse/internal/usecase"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func signUpView() usecase.AuthFormView {
	fields := domain.NewFormState()
	fields.FirstName = `<script>x</script>`
	fields.Email = "a@b"
	fields.Password = "secret1"
	fields.Role = domain.RoleReporter
	return usecase.AuthFormView{
		Mode:   domain.ModeSignUp,
		Fields: fields,
		Errors: domain.ErrorState{Email: usecase.MsgEmailInvalid},
		State:  domain.StateIdle,
	}
}

func TestHome(t *testing.T) {
	out := render(t, Home(dashboard.Default(), domain.Background{}))

	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "<title>Home | City Pulse</title>")
	assert.Contains(t, out, "Data Fusion")
	assert.Contains(t, out, "Voice Reporting")
	assert.Contains(t, out, "50K+")
	assert.Contains(t, out, `href="/auth?mode=signup"`)
}

func TestAuth_SignIn(t *testing.T) {
	v := usecase.NewAuthForm("s").Snapshot()
	out := render(t, Auth(v, nil, nil, domain.Background{}))

	assert.Contains(t, out, `data-mode="signin"`)
	assert.Contains(t, out, "Welcome back!")
	assert.Contains(t, out, `name="email"`)
	assert.Contains(t, out, `name="password"`)
	assert.NotContains(t, out, `name="firstName"`)
	assert.NotContains(t, out, `name="role"`)
	assert.Contains(t, out, "Access City Pulse")
	assert.Contains(t, out, `data-next-mode="signup"`)
}

func TestAuth_SignUpWithErrors(t *testing.T) {
	out := render(t, Auth(signUpView(), nil, nil, domain.Background{}))

	assert.Contains(t, out, "<title>Sign Up | City Pulse</title>")
	assert.Contains(t, out, `name="firstName"`)
	assert.Contains(t, out, `name="confirmPassword"`)
	assert.Contains(t, out, "&lt;script&gt;x&lt;/script&gt;")
	assert.NotContains(t, out, "<script>x</script>")
	assert.Contains(t, out, `value="a@b"`)
	assert.NotContains(t, out, "secret1")
	assert.Contains(t, out, usecase.MsgEmailInvalid)
	assert.Contains(t, out, `aria-invalid="true"`)
	assert.Contains(t, out, `value="reporter" selected`)
	assert.Contains(t, out, "City Official - Manage and respond to reports")
	assert.Contains(t, out, "Join City Pulse")
}

func TestAuth_Submitting(t *testing.T) {
	v := signUpView()
	v.Errors = domain.ErrorState{}
	v.State = domain.StateSubmitting
	out := render(t, Auth(v, nil, nil, domain.Background{}))

	assert.Contains(t, out, `data-state="submitting"`)
	assert.Contains(t, out, `aria-busy="true"`)
	assert.Contains(t, out, "Creating Account...")

	v.Mode = domain.ModeSignIn
	out = render(t, Auth(v, nil, nil, domain.Background{}))
	assert.Contains(t, out, "Signing in...")
}

func TestAuth_Notice(t *testing.T) {
	n := &domain.Notice{ID: "abc", Level: domain.NoticeSuccess, Text: usecase.NoticeSignInOK}
	out := render(t, Auth(usecase.NewAuthForm("s").Snapshot(), n, nil, domain.Background{}))

	assert.Contains(t, out, `data-notice-id="abc"`)
	assert.Contains(t, out, "Login successful!")
}

func TestDashboard_Tabs(t *testing.T) {
	d := dashboard.Default()

	tests := []struct {
		tab      domain.DashboardTab
		contains []string
		excludes []string
	}{
		{domain.TabOverview, []string{"Live City Map", "Recent Reports", "AI Predictions"}, []string{"Reports by Severity"}},
		{domain.TabReports, []string{"Recent Reports", "text-red-600\">Critical"}, []string{"AI Predictions"}},
		{domain.TabPredictions, []string{"AI Predictions", "85%"}, []string{"Recent Reports"}},
		{domain.TabAnalytics, []string{"Reports by Severity", `<span class="count">1</span>`}, []string{"Live City Map"}},
	}

	for _, tc := range tests {
		t.Run(string(tc.tab), func(t *testing.T) {
			out := render(t, Dashboard(d, tc.tab, domain.Background{}))
			assert.Contains(t, out, `href="/dashboard?tab=`+string(tc.tab)+`" class="tab active"`)
			assert.Contains(t, out, "John Doe")
			assert.Contains(t, out, "System Status")
			assert.Contains(t, out, "Traffic Update")
			for _, s := range tc.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tc.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}
