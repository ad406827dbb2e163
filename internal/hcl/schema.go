package hcl

// fileSchema is the top-level structure of a projindex.hcl file.
type fileSchema struct {
	ProjectsDir *string     `hcl:"projects_dir,optional"`
	Output      *string     `hcl:"output,optional"`
	BuildDir    *string     `hcl:"build_dir,optional"`
	HrefPrefix  *string     `hcl:"href_prefix,optional"`
	Strict      *bool       `hcl:"strict,optional"`
	NoJekyll    *bool       `hcl:"nojekyll,optional"`
	Skip        []string    `hcl:"skip,optional"`
	Page        *pageSchema `hcl:"page,block"`
}

// pageSchema is the optional `page` block.
type pageSchema struct {
	Title     *string `hcl:"title,optional"`
	Heading   *string `hcl:"heading,optional"`
	Intro     *string `hcl:"intro,optional"`
	EmptyText *string `hcl:"empty_text,optional"`
}
