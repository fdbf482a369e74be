package fields

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
)

// rowIndexToken is the placeholder substituted client-side when cloning
// a blank row from the repeater's row template.
const rowIndexToken = "__i__"

var repeaterTmpl = template.Must(template.New("repeater").Parse(
	`<div class="scs-repeater" id="{{.ID}}" data-min-rows="{{.MinRows}}" data-max-rows="{{.MaxRows}}">` +
		`<input type="hidden" class="scs-repeater-json" name="{{.Name}}" value="{{.JSON}}">` +
		`{{range .Rows}}{{.}}{{end}}` +
		`<template class="scs-repeater-row-template">{{.RowTemplate}}</template>` +
		`<button type="button" class="scs-repeater-add">Add row</button>` +
		`</div>`))

type repeaterView struct {
	ID          string
	Name        string
	JSON        string
	MinRows     int
	MaxRows     int
	Rows        []template.HTML
	RowTemplate template.HTML
}

// RepeaterField holds an ordered sequence of rows, each row a fixed set
// of named sub-fields. Exactly one nesting level: a repeater inside a
// repeater is rejected at construction time.
//
// The repeater does not impose row order beyond array order and does
// not clamp row counts at storage time; min_rows/max_rows violations
// are validation errors, never silent data loss.
type RepeaterField struct {
	BaseField
	factory  *Factory
	subDescs []Descriptor // original sub descriptors, declaration order
	subs     []Field      // prototypes with ids prefixed by the repeater id
}

func newRepeater(d Descriptor, deps Deps) (Field, error) {
	if deps.factory == nil {
		return nil, fmt.Errorf("repeater %q: no factory available", d.ID)
	}
	var subDescs []Descriptor
	for _, sd := range d.SubFields {
		if sd.Type == KindRepeater {
			return nil, fmt.Errorf("repeater %q: nested repeater %q is not supported", d.ID, sd.ID)
		}
		subDescs = append(subDescs, sd)
	}
	d.Type = KindRepeater

	// Materialize prototypes with globally unique ids: the repeater's
	// own id prefixes every sub-field id.
	prefixed := make([]Descriptor, 0, len(subDescs))
	for _, sd := range subDescs {
		p := sd
		p.ID = d.ID + "_" + sd.ID
		prefixed = append(prefixed, p)
	}

	return &RepeaterField{
		BaseField: newBase(d),
		factory:   deps.factory,
		subDescs:  subDescs,
		subs:      deps.factory.CreateMany(prefixed),
	}, nil
}

// SubFields returns the materialized sub-field prototypes in
// declaration order.
func (f *RepeaterField) SubFields() []Field {
	return f.subs
}

// subFor returns the prototype handling the given original sub-field id.
func (f *RepeaterField) subFor(key string) Field {
	for i, sd := range f.subDescs {
		if sd.ID == key && i < len(f.subs) {
			return f.subs[i]
		}
	}
	return nil
}

// Sanitize decodes the raw row sequence (JSON string or already-decoded
// rows), sanitizes every cell through the matching sub-field, and
// re-encodes the result as the canonical JSON storage string. Cells with
// unknown keys get a generic plain-text sanitize instead of being lost.
func (f *RepeaterField) Sanitize(raw any) string {
	rows, err := DecodeRows(raw)
	if err != nil {
		slog.Warn("repeater sanitize: undecodable rows dropped", "field", f.desc.ID, "error", err)
		return ""
	}
	if rows == nil {
		return ""
	}
	clean := make([]Row, len(rows))
	for i, row := range rows {
		cleanRow := make(Row, len(row))
		for key, cell := range row {
			if sub := f.subFor(key); sub != nil {
				cleanRow[key] = sub.Sanitize(cell)
			} else {
				cleanRow[key] = sanitizeLine(cell)
			}
		}
		clean[i] = cleanRow
	}
	encoded, err := EncodeRows(clean)
	if err != nil {
		slog.Warn("repeater sanitize: encode failed", "field", f.desc.ID, "error", err)
		return ""
	}
	return encoded
}

// Validate runs the base check, then enforces min_rows/max_rows against
// the current row count. Out-of-bounds is reported, not auto-corrected.
func (f *RepeaterField) Validate(ctx context.Context) *ValidationError {
	if err := f.validateRequired(); err != nil {
		return err
	}
	rows, err := DecodeRows(f.Value())
	if err != nil {
		return &ValidationError{
			Field:   f.desc.ID,
			Kind:    ErrBadFormat,
			Message: fmt.Sprintf("%s rows could not be decoded", f.Label()),
		}
	}
	n := len(rows)
	if f.desc.MinRows > 0 && n < f.desc.MinRows {
		return &ValidationError{
			Field:   f.desc.ID,
			Kind:    ErrRowCount,
			Message: fmt.Sprintf("%s needs at least %d rows, has %d", f.Label(), f.desc.MinRows, n),
		}
	}
	if f.desc.MaxRows > 0 && n > f.desc.MaxRows {
		return &ValidationError{
			Field:   f.desc.ID,
			Kind:    ErrRowCount,
			Message: fmt.Sprintf("%s allows at most %d rows, has %d", f.Label(), f.desc.MaxRows, n),
		}
	}
	return nil
}

// SchemaValue projects the rows as an array of objects, each cell
// converted through its sub-field's own schema mapping. Empty cells are
// skipped, and an empty row list projects as nil.
func (f *RepeaterField) SchemaValue(stored string) any {
	rows, err := DecodeRows(stored)
	if err != nil || len(rows) == 0 {
		return nil
	}
	out := make([]any, 0, len(rows))
	for _, row := range rows {
		obj := make(map[string]any, len(row))
		for key, cell := range row {
			var v any
			if sub := f.subFor(key); sub != nil {
				v = sub.SchemaValue(cell)
			} else if cell != "" {
				v = cell
			}
			if v != nil {
				obj[key] = v
			}
		}
		if len(obj) > 0 {
			out = append(out, obj)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// RenderAdmin emits the authoritative canonical JSON as a hidden input,
// one rendered block per existing row, and an index-parameterized
// template for cloning blank rows client-side. Row reordering and
// deletion are reconciled purely from the hidden JSON at submit time.
func (f *RepeaterField) RenderAdmin() template.HTML {
	rows, err := DecodeRows(f.Value())
	if err != nil {
		slog.Warn("repeater render: undecodable rows", "field", f.desc.ID, "error", err)
		rows = nil
	}
	canonical, err := EncodeRows(rows)
	if err != nil {
		canonical = "[]"
	}

	view := repeaterView{
		ID:          f.desc.ID,
		Name:        f.Name(),
		JSON:        canonical,
		MinRows:     f.desc.MinRows,
		MaxRows:     f.desc.MaxRows,
		RowTemplate: f.renderRow(rowIndexToken, nil),
	}
	for i, row := range rows {
		view.Rows = append(view.Rows, f.renderRow(fmt.Sprintf("%d", i), row))
	}

	var buf bytes.Buffer
	if err := repeaterTmpl.Execute(&buf, view); err != nil {
		slog.Warn("repeater render failed", "field", f.desc.ID, "error", err)
		return ""
	}
	return f.wrap(template.HTML(buf.String()))
}

// renderRow renders one row block. Each sub-field is materialized fresh
// so the cached prototypes never carry per-row values.
func (f *RepeaterField) renderRow(index string, row Row) template.HTML {
	var out template.HTML
	out += template.HTML(`<div class="scs-repeater-row" data-index="` + template.HTMLEscapeString(index) + `">`)
	for _, sd := range f.subDescs {
		clone := sd
		clone.ID = fmt.Sprintf("%s_%s_%s", f.desc.ID, index, sd.ID)
		clone.Name = fmt.Sprintf("%s[%s][%s]", f.Name(), index, sd.ID)
		sub, err := f.factory.Create(clone)
		if err != nil {
			slog.Warn("repeater row sub-field skipped", "field", f.desc.ID, "sub", sd.ID, "error", err)
			continue
		}
		if row != nil {
			sub.SetValue(row[sd.ID])
		}
		out += sub.RenderAdmin()
	}
	out += template.HTML(`</div>`)
	return out
}

// RenderFrontend renders every row's sub-field values in order; an
// empty row list renders nothing.
func (f *RepeaterField) RenderFrontend() template.HTML {
	rows, err := DecodeRows(f.Value())
	if err != nil || len(rows) == 0 {
		return ""
	}
	var out template.HTML
	out += template.HTML(`<div class="scs-repeater-values">`)
	for _, row := range rows {
		out += template.HTML(`<div class="scs-repeater-row-values">`)
		for _, sd := range f.subDescs {
			cell, ok := row[sd.ID]
			if !ok || cell == "" {
				continue
			}
			sub := f.subFor(sd.ID)
			if sub == nil {
				continue
			}
			clone, err := f.factory.Create(sub.Descriptor())
			if err != nil {
				continue
			}
			clone.SetValue(cell)
			out += clone.RenderFrontend()
		}
		out += template.HTML(`</div>`)
	}
	out += template.HTML(`</div>`)
	return out
}
