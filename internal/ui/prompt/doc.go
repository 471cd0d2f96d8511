// Package prompt provides simple interactive prompts.
//
// Prompts are only shown on a terminal; callers check that first and fall
// back to flags otherwise.
package prompt
