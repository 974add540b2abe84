package forms

// NonFieldErrors is the key for errors that belong to the form as a whole.
const NonFieldErrors = "__all__"

// Errors maps a form field name to its messages.
type Errors map[string][]string

func (e Errors) Add(field string, msgs ...string) {
	if len(msgs) == 0 {
		return
	}
	e[field] = append(e[field], msgs...)
}

func (e Errors) Get(field string) []string { return e[field] }

func (e Errors) Has(field string) bool { return len(e[field]) > 0 }

func (e Errors) Any() bool {
	for _, msgs := range e {
		if len(msgs) > 0 {
			return true
		}
	}
	return false
}

func (e Errors) NonField() []string { return e[NonFieldErrors] }
