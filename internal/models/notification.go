// internal/models/notification.go
package models

import (
	"time"
)

// Notification is an operation-outcome message shown to administrators (the
// backend side of the UI's toast feed). Fire-and-forget: producers never wait
// on acknowledgement.
type Notification struct {
	BaseModel
	Title    string     `json:"title" gorm:"size:255;not null"`
	Message  string     `json:"message" gorm:"type:text"`
	Severity Severity   `json:"severity" gorm:"type:varchar(20);default:'info';index"`
	Status   string     `json:"status" gorm:"type:varchar(20);default:'unread';index"`
	ReadAt   *time.Time `json:"read_at"`
}
