package triggerlog

import (
	"time"

	"github.com/google/uuid"
)

// TriggerLog is one handled trigger. (source, source_key) is unique so a
// trigger replayed after a restart is logged once.
type TriggerLog struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Source    string    `gorm:"column:source;type:varchar(30);not null;uniqueIndex:uq_trigger_source_key,priority:1"`
	SourceKey string    `gorm:"column:source_key;type:varchar(2048);not null;uniqueIndex:uq_trigger_source_key,priority:2"`
	Action    *string   `gorm:"column:action;type:varchar(20)"`
	Hour      *string   `gorm:"column:hour;type:varchar(40)"`
	Outcome   string    `gorm:"column:outcome;type:varchar(20);not null;index"`
	EventID   *string   `gorm:"column:event_id;type:varchar(100)"`
	Error     *string   `gorm:"column:error;type:text"`
	UserID    *string   `gorm:"column:user_id;type:varchar(100);index"`
	DeviceID  *string   `gorm:"column:device_id;type:varchar(100)"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
}

func (TriggerLog) TableName() string {
	return "trigger_logs"
}
