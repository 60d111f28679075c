package schema

import (
	"fmt"
	"io"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/ramp/pkg/domain"
	"github.com/aretw0/ramp/pkg/engine"
	"github.com/aretw0/ramp/pkg/policy"
)

// Export captures a consistent snapshot of the engine's graph as a
// document, honoring the policy's export element limit.
func Export(e *engine.Engine) (*Document, error) {
	pol := e.Policy()
	snapshot := e.Snapshot()

	if pol.MaxExportElements > 0 && len(snapshot) > pol.MaxExportElements {
		return nil, fmt.Errorf("export limit exceeded: %d elements, policy %s allows %d",
			len(snapshot), pol.Name, pol.MaxExportElements)
	}

	doc := &Document{
		Name:     e.Name(),
		Policy:   pol.Name,
		Version:  pol.Version,
		Wrap:     pol.Wrap,
		Elements: make([]DocumentElement, 0, len(snapshot)),
	}
	for _, it := range snapshot {
		doc.Elements = append(doc.Elements, DocumentElement{At: it.Addr, Element: it.Element})
	}
	return doc, nil
}

// Import rebuilds a palette engine from a document. The policy is resolved
// by name against the built-in registry; the resulting engine starts with a
// fresh, empty history.
func Import(doc *Document, opts ...engine.Option) (*engine.Engine, error) {
	pol, err := policy.Lookup(doc.Policy)
	if err != nil {
		return nil, fmt.Errorf("import %q: %w", doc.Name, err)
	}

	eng := engine.New(doc.Name, pol, opts...)
	items := make([]engine.ElementAt, 0, len(doc.Elements))
	for _, de := range doc.Elements {
		items = append(items, engine.ElementAt{Addr: de.At, Element: de.Element})
	}
	if err := eng.Restore(items); err != nil {
		return nil, fmt.Errorf("import %q: %w", doc.Name, err)
	}
	return eng, nil
}

// EncodeYAML writes the document as YAML.
func EncodeYAML(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode palette document: %w", err)
	}
	return nil
}

// DecodeYAML reads a YAML document.
func DecodeYAML(r io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode palette document: %w", err)
	}
	return &doc, nil
}

// DecodeOperation converts a generic payload (decoded JSON/YAML map, MCP
// tool arguments) into a typed operation. Numeric types are coerced, so
// float64-heavy JSON decoding round-trips cleanly.
func DecodeOperation(payload map[string]any) (domain.Operation, error) {
	var op domain.Operation
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &op,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return domain.Operation{}, fmt.Errorf("operation decoder: %w", err)
	}
	if err := dec.Decode(payload); err != nil {
		return domain.Operation{}, fmt.Errorf("%w: %v", domain.ErrInvalidOperation, err)
	}
	if err := op.Validate(); err != nil {
		return domain.Operation{}, err
	}
	return op, nil
}
