package storage

import "time"

// RunModel is the GORM model for runs table
type RunModel struct {
	CheckpointFailures string `gorm:"not null;default:''"`
	CreatedAt          time.Time
	FinishedAt         time.Time
	ID                 string    `gorm:"primaryKey"`
	StartedAt          time.Time `gorm:"not null;index:idx_started_at"`
	TotalAttempted     int       `gorm:"not null;default:0"`
	TotalSucceeded     int       `gorm:"not null;default:0"`
	UpdatedAt          time.Time
	Workflow           string `gorm:"not null;index:idx_workflow"`
}

// TableName specifies the table name for GORM
func (RunModel) TableName() string { return "runs" }

// RunItemModel is the GORM model for the outcome of one item of a run
type RunItemModel struct {
	Batch         int    `gorm:"not null;default:0"`
	Client        string `gorm:"not null;default:''"`
	CreatedAt     time.Time
	Detail        string `gorm:"not null;default:''"`
	Fields        string `gorm:"not null;default:'{}'"`
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	ItemID        string `gorm:"not null;index:idx_item_id"`
	Kind          string `gorm:"not null;check:kind IN ('processed','already_in_target_state','not_found','failed')"`
	Position      int    `gorm:"not null"`
	ReasonKind    string `gorm:"not null;default:''"`
	ReasonMessage string `gorm:"not null;default:''"`
	Row           int    `gorm:"not null;default:0"`
	RunID         string `gorm:"not null;index:idx_run_id"`
	Step          string `gorm:"not null;default:''"`
}

// TableName specifies the table name for GORM
func (RunItemModel) TableName() string { return "run_items" }

// kindCount is the row shape of the per-run outcome count query
type kindCount struct {
	Kind  string
	N     int
	RunID string
}
