package catalog

import (
	"time"

	"github.com/google/uuid"
)

// DriveLocation labels which configured root a project was discovered under.
type DriveLocation string

const (
	DriveA DriveLocation = "A"
	DriveB DriveLocation = "B"
)

// ProjectIdentity is the durable key for a discovered project. FullNumber is
// the join key across scans; re-scanning the same physical folder must yield
// the same FullNumber or the record is treated as a new project.
type ProjectIdentity struct {
	FullNumber  string `json:"full_number"`
	ShortNumber string `json:"short_number"`
	Year        string `json:"year"`
}

// ProjectRecord is one row in the catalog: exactly one exists per distinct
// FullNumber. A project found under a second root keeps its first root as the
// primary Path and records the second in the alternate fields.
type ProjectRecord struct {
	ID string `json:"id"`
	ProjectIdentity

	Name          string        `json:"name"`
	Path          string        `json:"path"`
	DriveLocation DriveLocation `json:"drive_location"`

	AlternatePath          string        `json:"alternate_path,omitempty"`
	AlternateDriveLocation DriveLocation `json:"alternate_drive_location,omitempty"`

	LastScanned time.Time `json:"last_scanned"`

	// Metadata is user-authored and joined in at read time; scanning never
	// produces or mutates it.
	Metadata *ProjectMetadata `json:"metadata,omitempty"`
}

// ProjectMetadata holds user annotations keyed by project id. It has an
// independent lifecycle from the scanned record: metadata for a project that
// vanishes and is later rediscovered under the same number is recovered.
type ProjectMetadata struct {
	ProjectID  string   `json:"project_id"`
	Location   string   `json:"location,omitempty"`
	Status     string   `json:"status,omitempty"`
	Team       string   `json:"team,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	IsFavorite bool     `json:"is_favorite"`
}

// idNamespace seeds deterministic project ids. Changing it orphans all
// persisted metadata, so it is fixed for the life of the schema.
var idNamespace = uuid.MustParse("9d1c32a5-7f64-4b8e-b012-6a3f5cbb0a41")

// ProjectID derives the stable record id for a project number. The same
// FullNumber always maps to the same id, across scans and across a
// delete-then-rediscover cycle.
func ProjectID(fullNumber string) string {
	return uuid.NewSHA1(idNamespace, []byte(fullNumber)).String()
}
