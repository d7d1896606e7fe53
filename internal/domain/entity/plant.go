package entity

import "time"

// UnknownValue is the placeholder substituted for blank optional plant fields
// and for comment author names that cannot be resolved.
const UnknownValue = "Unknown"

// PlantContent holds the editable descriptive fields of a plant record.
// Name is the only required field.
type PlantContent struct {
	Name        string // Common name of the plant. Required.
	LatinName   string // Botanical (latin) name.
	Composition string // Active compounds and constituents.
	Usage       string // What ailments or purposes the plant is used for.
	Dosage      string // Recommended dosage.
	Preparation string // How the plant is processed or prepared.
	SideEffects string // Known side effects and contraindications.
	MediaRef    string // Content-addressed reference to an attached image or document.
}

// Plant is a registered herbal plant record. The identifier is the zero-based
// position of the record in the plants collection and never changes. Ownership
// is immutable after creation.
type Plant struct {
	ID      uint64 // Zero-based, strictly increasing registry identifier.
	Content PlantContent
	Owner   string // Identity that created the record. Immutable.

	// Engagement aggregates, maintained by delta updates.
	RatingTotal uint64 // Sum of all current rating values.
	RatingCount uint64 // Number of distinct identities that have rated.
	LikeCount   uint64 // Number of identities whose like is currently active.

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Normalized returns a copy of the content with blank optional fields replaced
// by the placeholder value. Name is left as-is; a blank name is rejected
// before a record is ever written.
func (c PlantContent) Normalized() PlantContent {
	out := c
	for _, f := range []*string{
		&out.LatinName, &out.Composition, &out.Usage,
		&out.Dosage, &out.Preparation, &out.SideEffects, &out.MediaRef,
	} {
		if *f == "" {
			*f = UnknownValue
		}
	}

	return out
}

// AverageRating returns the mean of current ratings rounded to one decimal,
// clamped to [0, 5]. Zero when the plant has no ratings.
func (p *Plant) AverageRating() float64 {
	if p.RatingCount == 0 {
		return 0
	}

	avg := float64(p.RatingTotal) / float64(p.RatingCount)
	if avg < 0 {
		avg = 0
	}
	if avg > 5 {
		avg = 5
	}

	return float64(int64(avg*10+0.5)) / 10
}

// OwnedBy reports whether the given identity owns this plant record,
// comparing identifiers case-insensitively.
func (p *Plant) OwnedBy(identityID string) bool {
	return SameIdentity(p.Owner, identityID)
}
