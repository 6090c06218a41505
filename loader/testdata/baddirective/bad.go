// Package baddirective is a fixture with a misspelled directive.
package baddirective

// Thing is not a controller.
//
//apidesc:controler
type Thing struct{}
