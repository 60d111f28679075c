// Package schema defines the serializable palette document and the
// encode/decode paths between documents, engines and generic payloads.
//
// A document captures a consistent graph snapshot plus the policy needed to
// rebuild it. Importing always starts a fresh, empty history.
package schema

import (
	"github.com/aretw0/ramp/pkg/domain"
)

// Document is the persistent form of a palette.
type Document struct {
	Name     string            `json:"name" yaml:"name"`
	Policy   string            `json:"policy" yaml:"policy"`
	Version  string            `json:"version" yaml:"version"`
	Wrap     domain.Wrap       `json:"wrap" yaml:"wrap"`
	Elements []DocumentElement `json:"elements" yaml:"elements"`
}

// DocumentElement is one address/element pair of a document.
type DocumentElement struct {
	At      domain.Address `json:"at" yaml:"at"`
	Element domain.Element `json:"element" yaml:"element"`
}
