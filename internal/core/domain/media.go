package domain

// Image is one image found for a point.
type Image struct {
	// Src is the image or thumbnail URL, or a local path.
	Src string `json:"src"`

	// Source is the landing page crediting the image.
	Source string `json:"source,omitempty"`

	// Title is the image title as reported by the provider.
	Title string `json:"title,omitempty"`

	// Creator and License are attribution details.
	Creator string `json:"creator,omitempty"`
	License string `json:"license,omitempty"`

	// Mature marks content flagged as unsuitable for children.
	Mature bool `json:"-"`
}
