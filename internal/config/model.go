package config

// Model is the unified, format-agnostic representation of a configuration
// file. Pointer and nil-slice fields mean "not set in the file".
type Model struct {
	ProjectsDir *string
	Output      *string
	BuildDir    *string
	HrefPrefix  *string
	Strict      *bool
	NoJekyll    *bool
	Skip        []string
	Page        *Page

	// Source is the path the model was loaded from.
	Source string
}

// Page is the format-agnostic representation of the `page` block.
type Page struct {
	Title     *string
	Heading   *string
	Intro     *string
	EmptyText *string
}

// Empty returns a model with nothing set, used when no file is present.
func Empty() *Model {
	return &Model{}
}
