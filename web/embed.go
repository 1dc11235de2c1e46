package web

import "embed"

// TemplatesFS embeds the dashboard page and its partials.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS embeds stylesheets and scripts.
//
//go:embed static/*
var StaticFS embed.FS
