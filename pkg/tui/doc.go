// Package tui fills a form.Form interactively from a terminal.
//
// A Runner prompts every field once, submits, and re-prompts only the fields
// reported invalid. Prompts go through a PromptDriver; the default driver uses
// github.com/AlecAivazis/survey/v2 and tests substitute a scripted one.
package tui
