// Package model holds the domain types shared by the handler, service and
// repository layers, and the request payloads decoded from "param".
package model
