// Package validation validates configuration structs declared with
// go-playground/validator tags and reports failures as an AppError that
// names every offending field by its config key.
package validation
