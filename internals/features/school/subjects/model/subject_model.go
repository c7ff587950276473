// internals/features/school/subjects/model/subject_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// SubjectModel: mata pelajaran.
// - subject_name unik (case-insensitive ditangani di controller)
// - subject_code opsional tapi unik bila terisi
type SubjectModel struct {
	SubjectID   uuid.UUID `gorm:"column:subject_id;type:uuid;default:gen_random_uuid();primaryKey" json:"subject_id"`
	SubjectName string    `gorm:"column:subject_name;type:varchar(100);not null;uniqueIndex" json:"subject_name"`
	SubjectCode *string   `gorm:"column:subject_code;type:varchar(20);uniqueIndex" json:"subject_code,omitempty"`

	SubjectCreatedBy *uuid.UUID `gorm:"column:subject_created_by;type:uuid" json:"subject_created_by,omitempty"`

	SubjectCreatedAt time.Time `gorm:"column:subject_created_at;not null;autoCreateTime" json:"subject_created_at"`
	SubjectUpdatedAt time.Time `gorm:"column:subject_updated_at;not null;autoUpdateTime" json:"subject_updated_at"`
}

func (SubjectModel) TableName() string { return "subjects" }
