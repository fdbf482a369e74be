// render.go holds the admin and frontend widget templates. Templates are
// parsed once at package init; field kinds execute the named template
// matching their widget and wrap it in the shared field chrome.
package fields

import (
	"bytes"
	"html/template"
	"log/slog"
)

const widgetTmpl = `
{{define "wrap"}}<div class="scs-field scs-field-{{.Kind}}{{with .CSSClass}} {{.}}{{end}}"{{with .Width}} style="width:{{.}}"{{end}}><label for="{{.ID}}">{{.Label}}{{if .Required}} <span class="scs-required">*</span>{{end}}</label>{{.Inner}}{{with .Instructions}}<p class="scs-instructions">{{.}}</p>{{end}}</div>{{end}}

{{define "text"}}<input type="text" id="{{.ID}}" name="{{.Name}}" value="{{.Value}}"{{with .Placeholder}} placeholder="{{.}}"{{end}}{{if .Required}} required{{end}}>{{end}}

{{define "textarea"}}<textarea id="{{.ID}}" name="{{.Name}}" rows="6"{{with .Placeholder}} placeholder="{{.}}"{{end}}{{if .Required}} required{{end}}>{{.Value}}</textarea>{{end}}

{{define "number"}}<input type="number" id="{{.ID}}" name="{{.Name}}" value="{{.Value}}"{{with .MinAttr}} min="{{.}}"{{end}}{{with .MaxAttr}} max="{{.}}"{{end}}{{with .StepAttr}} step="{{.}}"{{end}}{{with .Placeholder}} placeholder="{{.}}"{{end}}{{if .Required}} required{{end}}>{{end}}

{{define "select"}}<select id="{{.ID}}" name="{{.Name}}"{{if .Multiple}} multiple{{end}}{{if .Required}} required{{end}}>{{if not .Multiple}}<option value=""></option>{{end}}{{range .Options}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}</select>{{end}}

{{define "radio"}}<fieldset id="{{.ID}}" class="scs-radio-group">{{$n := .Name}}{{range .Options}}<label class="scs-radio"><input type="radio" name="{{$n}}" value="{{.Value}}"{{if .Selected}} checked{{end}}> {{.Label}}</label>{{end}}</fieldset>{{end}}

{{define "checkbox"}}<input type="hidden" name="{{.Name}}" value="{{.Unchecked}}"><input type="checkbox" id="{{.ID}}" name="{{.Name}}" value="{{.Checked}}"{{if .IsChecked}} checked{{end}}>{{end}}

{{define "date"}}<input type="date" id="{{.ID}}" name="{{.Name}}" value="{{.Value}}"{{with .MinDate}} min="{{.}}"{{end}}{{with .MaxDate}} max="{{.}}"{{end}}{{if .Required}} required{{end}}>{{end}}

{{define "image"}}<input type="number" class="scs-image-id" id="{{.ID}}" name="{{.Name}}" value="{{.Value}}" min="0"{{if .Required}} required{{end}}>{{end}}

{{define "frontend_value"}}<span class="scs-value{{with .CSSClass}} {{.}}{{end}}">{{.Value}}</span>{{end}}
`

var widgets = template.Must(template.New("widgets").Parse(widgetTmpl))

// widgetData is the execution context shared by the admin widget
// templates. Kinds fill only the fields their widget reads.
type widgetData struct {
	ID          string
	Name        string
	Value       string
	Placeholder string
	Required    bool

	// number
	MinAttr, MaxAttr, StepAttr string

	// select / radio
	Options  []optionView
	Multiple bool

	// checkbox
	Checked, Unchecked string
	IsChecked          bool

	// date
	MinDate, MaxDate string
}

// optionView is one rendered choice with its selection state.
type optionView struct {
	Value    string
	Label    string
	Selected bool
}

type wrapData struct {
	Kind         Kind
	ID           string
	Label        string
	CSSClass     string
	Width        string
	Instructions string
	Required     bool
	Inner        template.HTML
}

type frontendData struct {
	CSSClass string
	Value    string
}

// execWidget executes a named widget template. Template errors degrade
// to an empty fragment with a warning; rendering never fails a request.
func execWidget(name string, data any) template.HTML {
	var buf bytes.Buffer
	if err := widgets.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Warn("widget render failed", "widget", name, "error", err)
		return ""
	}
	return template.HTML(buf.String())
}

// wrap surrounds a widget fragment with the shared field chrome: label,
// css class hooks, width and instructions.
func (b *BaseField) wrap(inner template.HTML) template.HTML {
	return execWidget("wrap", wrapData{
		Kind:         b.desc.Type,
		ID:           b.desc.ID,
		Label:        b.Label(),
		CSSClass:     b.desc.CSSClass,
		Width:        b.desc.Width,
		Instructions: b.desc.Instructions,
		Required:     b.desc.Required,
		Inner:        inner,
	})
}
