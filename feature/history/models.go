package history

import "time"

// RunRecord is one persisted run.
type RunRecord struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	RunID      string    `gorm:"size:36;uniqueIndex" json:"run_id"`
	Workflow   string    `gorm:"size:16" json:"workflow"`
	Status     string    `gorm:"size:16;index" json:"status"`
	Account    string    `gorm:"size:12" json:"account"`
	Region     string    `gorm:"size:32" json:"region"`
	StartedAt  time.Time `gorm:"index" json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Added      int       `json:"added"`
	Removed    int       `json:"removed"`
	Warnings   int       `json:"warnings"`
	Error      string    `gorm:"type:text" json:"error,omitempty"`

	Outcomes []OutcomeRecord `gorm:"foreignKey:RunRecordID" json:"outcomes,omitempty"`
}

// TableName pins the table name.
func (RunRecord) TableName() string { return "lifecycle_runs" }

// OutcomeRecord is the persisted outcome of one bucket in a run.
type OutcomeRecord struct {
	ID          uint   `gorm:"primaryKey" json:"-"`
	RunRecordID uint   `gorm:"index" json:"-"`
	Bucket      string `gorm:"size:63" json:"bucket"`
	Added       int    `json:"added"`
	Removed     int    `json:"removed"`
	Commit      string `gorm:"size:8" json:"commit"`
	Committed   bool   `json:"committed"`
	Warnings    int    `json:"warnings"`
}

// TableName pins the table name.
func (OutcomeRecord) TableName() string { return "lifecycle_outcomes" }

// RequiredColumns lists the columns each history table must carry.
var RequiredColumns = map[string][]string{
	RunRecord{}.TableName(): {
		"id", "run_id", "workflow", "status", "account", "region",
		"started_at", "finished_at", "added", "removed", "warnings", "error",
	},
	OutcomeRecord{}.TableName(): {
		"id", "run_record_id", "bucket", "added", "removed", "commit", "committed", "warnings",
	},
}
