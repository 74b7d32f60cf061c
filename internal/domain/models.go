package domain

// Domain contains core models shared by the hero client and its consumers.

// Hero is the record managed by the heroes backend. ID is assigned by the
// backend on creation and is omitted from request bodies while unset.
type Hero struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
}

// HeroRef identifies a hero either by a bare id or by a full record.
type HeroRef struct {
	hero  *Hero
	rawID int
}

// RefByID references a hero by its identifier.
func RefByID(id int) HeroRef {
	return HeroRef{rawID: id}
}

// RefByHero references a hero through its record.
func RefByHero(h Hero) HeroRef {
	return HeroRef{hero: &h}
}

// ID resolves the referenced identifier.
func (r HeroRef) ID() int {
	if r.hero != nil {
		return r.hero.ID
	}
	return r.rawID
}
