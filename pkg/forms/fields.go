package forms

// FieldClass is the CSS class every rendered form field carries.
const FieldClass = "form-control"

type Choice struct {
	Value    string
	Label    string
	Selected bool
}

// Field describes one input for the templates.
type Field struct {
	Name     string
	Label    string
	Type     string // text, password, email, select, checkboxes
	Value    string
	Required bool
	Choices  []Choice
	Errors   []string
	Attrs    map[string]string
}

func (f Field) Class() string { return f.Attrs["class"] }

// Form is implemented by every form that can be rendered.
type Form interface {
	Fields(errs Errors) []Field
}

// Decorate sets the class attribute on every field. It runs once after the
// field list is built so all forms get the same styling.
func Decorate(fields []Field, class string) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		attrs := make(map[string]string, len(f.Attrs)+1)
		for k, v := range f.Attrs {
			attrs[k] = v
		}
		attrs["class"] = class
		f.Attrs = attrs
		out[i] = f
	}
	return out
}

// Render builds the decorated field list of f.
func Render(f Form, errs Errors) []Field {
	if errs == nil {
		errs = Errors{}
	}
	return Decorate(f.Fields(errs), FieldClass)
}
