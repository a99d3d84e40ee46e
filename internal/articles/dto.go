package articles

type CreateArticleRequest struct {
	Title         string  `json:"title" validate:"required,max=200"`
	Subtitle      *string `json:"subtitle,omitempty" validate:"omitempty,max=300"`
	Slug          *string `json:"slug,omitempty" validate:"omitempty,max=200"`
	Body          string  `json:"body" validate:"required"`
	CoverImageURL *string `json:"cover_image_url,omitempty" validate:"omitempty,url"`
	Published     bool    `json:"published"`
}

type UpdateArticleRequest struct {
	Title         *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Subtitle      *string `json:"subtitle,omitempty" validate:"omitempty,max=300"`
	Slug          *string `json:"slug,omitempty" validate:"omitempty,max=200"`
	Body          *string `json:"body,omitempty"`
	CoverImageURL *string `json:"cover_image_url,omitempty" validate:"omitempty,url"`
	Published     *bool   `json:"published,omitempty"`
}

// PublicArticle augments an article with its body rendered to HTML for
// the public read endpoint.
type PublicArticle struct {
	Article
	BodyHTML string `json:"body_html"`
}
