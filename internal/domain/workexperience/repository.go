package workexperience

import "context"

// Repository describes work experience row persistence.
type Repository interface {
	ListByUserID(ctx context.Context, userID string) ([]WorkExperience, error)
	GetByID(ctx context.Context, id string) (WorkExperience, bool, error)
	Insert(ctx context.Context, item WorkExperience) error
	// Update overwrites the editable fields of an existing row and reports
	// whether a row was matched.
	Update(ctx context.Context, item WorkExperience) (bool, error)
	DeleteAllByUserID(ctx context.Context, userID string) (int64, error)
	DeleteOne(ctx context.Context, userID, id string) (bool, error)
}

// LinkRepository describes work experience to specialization link persistence.
type LinkRepository interface {
	// ListSpecializationIDs returns linked specialization ids keyed by work
	// experience id. Ids without links are absent from the map.
	ListSpecializationIDs(ctx context.Context, workExperienceIDs []string) (map[string][]string, error)
	Insert(ctx context.Context, link SpecializationLink) error
	DeleteByWorkExperienceIDs(ctx context.Context, workExperienceIDs []string) (int64, error)
}
