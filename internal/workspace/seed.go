package workspace

import (
	"context"
	"fmt"

	"github.com/jpl-au/quire/internal/nav"
)

// SeedVersion is the first version of a seeded workspace.
const SeedVersion = "v1"

type seedNode struct {
	tab, parent, slug, title, file string
	kind                           nav.Kind
	body                           string
}

var seedContent = []seedNode{
	{tab: "program", slug: "getting-started", title: "Getting started", kind: nav.KindFolder},
	{tab: "program", parent: "getting-started", slug: "intro", title: "Introduction", file: "introduction.md", kind: nav.KindPage, body: `# Introduction

Welcome to the documentation. Pages are grouped into tabs and versions;
each version is an independent copy you can edit without touching the others.

## Key features

- Automation flows with conditions and loops
- Monitoring and reporting
- A visual editor that needs no code

> **Note:** browse the tabs above to explore each area.
`},
	{tab: "program", parent: "getting-started", slug: "quick-start", title: "Quick start", file: "quick-start.md", kind: nav.KindPage, body: `# Quick start

## Step 1: create an account

1. Open the sign-up page
2. Enter your details
3. Confirm your email address

## Step 2: your first automation

` + "```python\nimport requests\n\nrequests.post('https://api.example.com/automation', {'name': 'first', 'trigger': 'schedule'})\n```" + `

- Keep your API key secret
- Test an automation before enabling it
`},
	{tab: "program", slug: "automation", title: "Automation", kind: nav.KindFolder},
	{tab: "program", parent: "automation", slug: "iterator", title: "Iterator", file: "iterator.md", kind: nav.KindPage, body: `# Iterator

The iterator repeats a set of actions for every item in a list.

` + "```json\n{\"iterator\": {\"input\": [\"a\", \"b\"], \"actions\": [{\"type\": \"process_item\", \"value\": \"{{item}}\"}]}}\n```" + `

> **Limit:** an iterator processes at most 1000 items per run.
`},
	{tab: "api", slug: "api-guide", title: "API", kind: nav.KindFolder},
	{tab: "api", parent: "api-guide", slug: "api-intro", title: "API introduction", file: "api-intro.md", kind: nav.KindPage, body: `# API introduction

Every request is authenticated with a bearer token and rate limited per key.
`},
	{tab: "app", slug: "app-intro", title: "App introduction", file: "app-intro.md", kind: nav.KindPage, body: `# App introduction

The mobile app mirrors the web editor and works offline.
`},
}

// Seed initialises an empty store with SeedVersion, the default tabs and a
// small set of starter pages.
func (w *Workspace) Seed(ctx context.Context) error {
	if err := w.Init(ctx, SeedVersion, DefaultTabs()); err != nil {
		return err
	}
	for _, n := range seedContent {
		req := CreateRequest{
			Title:    n.title,
			Tab:      n.tab,
			Parent:   n.parent,
			Kind:     n.kind,
			FileName: n.file,
			Slug:     n.slug,
		}
		if n.kind == nav.KindPage {
			body := n.body
			req.Body = &body
		}
		if _, err := w.Create(ctx, req); err != nil {
			return fmt.Errorf("seed %s: %w", n.slug, err)
		}
	}
	return nil
}
