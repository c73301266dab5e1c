package dataset

import "strings"

// PathTemplate renders canonical entity paths from a placeholder pattern,
// e.g. "/compounds/{category}/{subcategory}/{id}-compound". Templates come
// from configuration so new domains can register their own pattern.
type PathTemplate string

// Render substitutes {category}, {subcategory} and {id} into the template.
// The result is a pure function of its inputs: identical inputs always
// produce identical paths, and distinct ids never collide within the same
// domain/category/subcategory because {id} appears verbatim in the output.
func (t PathTemplate) Render(category, subcategory, id string) string {
	r := strings.NewReplacer(
		"{category}", slugify(category),
		"{subcategory}", slugify(subcategory),
		"{id}", slugify(id),
	)
	return r.Replace(string(t))
}

// slugify lowercases a path segment and replaces spaces with hyphens.
// Authors write categories like "Precious Metal"; paths use "precious-metal".
func slugify(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	return strings.ReplaceAll(s, " ", "-")
}
