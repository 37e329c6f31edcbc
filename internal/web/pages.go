package web

import (
	"html/template"
	"net/http"
)

// The UI surface is deliberately small: a login page and a callback result
// page. Everything else is JSON consumed by the frontend.

var loginTemplate = template.Must(template.New("login").Parse(`<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>Arrendo — Sign in</title></head>
<body>
<h1>Sign in</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/auth/login">
  <label>Email <input type="email" name="email" required></label>
  <label>Password <input type="password" name="password" required minlength="8"></label>
  <button type="submit">Sign in</button>
</form>
<p>Or continue with:</p>
<ul>
{{range .Providers}}  <li><a href="/auth/{{.}}">{{.}}</a></li>
{{end}}</ul>
</body>
</html>
`))

var callbackErrorTemplate = template.Must(template.New("callback_error").Parse(`<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>Arrendo — Sign in failed</title></head>
<body>
<h1>Sign in failed</h1>
<p>{{.Message}}</p>
<p><a href="/login">Back to login</a></p>
</body>
</html>
`))

var homeTemplate = template.Must(template.New("home").Parse(`<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>Arrendo</title></head>
<body>
<h1>Arrendo</h1>
<p>Signed in as {{.FullName}} ({{.Email}}).</p>
<ul>
  <li><a href="/api/contracts">Contracts</a></li>
  <li><a href="/api/properties">Properties</a></li>
  <li><a href="/api/tenants">Tenants</a></li>
  <li><a href="/api/payments">Payments</a></li>
</ul>
<form method="post" action="/auth/logout"><button type="submit">Sign out</button></form>
</body>
</html>
`))

type loginPageData struct {
	Error     string
	Providers []string
}

func renderLogin(w http.ResponseWriter, status int, data loginPageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = loginTemplate.Execute(w, data)
}

func renderCallbackError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = callbackErrorTemplate.Execute(w, struct{ Message string }{Message: message})
}
