// Package handler is the HTTP layer after the router.
//
// Every API endpoint reads its input from the single "param" request value
// and answers with a response envelope; the generic wrappers in base.go do
// the decoding and writing so endpoint functions only call services.
package handler
