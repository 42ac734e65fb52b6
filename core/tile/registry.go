package tile

// Tile is an admin shortcut that can be pinned to the portal strip.
type Tile struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

// tiles is the registry, in display order.
var tiles = []Tile{
	{Slug: "users", Label: "Users", Path: "/admin/users"},
	{Slug: "groups", Label: "Groups", Path: "/admin/groups"},
	{Slug: "courses", Label: "Courses", Path: "/admin/courses"},
	{Slug: "scorm", Label: "SCORM Packages", Path: "/admin/scorm"},
	{Slug: "forms", Label: "Forms", Path: "/admin/forms"},
	{Slug: "workshops", Label: "Workshops", Path: "/admin/workshops"},
	{Slug: "competencies", Label: "Competencies", Path: "/admin/competencies"},
	{Slug: "branding", Label: "Branding", Path: "/admin/branding"},
	{Slug: "reports", Label: "Reports", Path: "/admin/reports"},
}

var bySlug = make(map[string]Tile, len(tiles))

func init() {
	for _, t := range tiles {
		bySlug[t.Slug] = t
	}
}

// All returns the registry in display order.
func All() []Tile {
	out := make([]Tile, len(tiles))
	copy(out, tiles)
	return out
}

// Get looks a tile up by slug.
func Get(slug string) (Tile, bool) {
	t, ok := bySlug[slug]
	return t, ok
}

// Label returns the display label for slug, or "" when the slug is not
// registered.
func Label(slug string) string {
	return bySlug[slug].Label
}
