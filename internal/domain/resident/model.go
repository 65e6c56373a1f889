package resident

import (
	"time"

	"github.com/google/uuid"
)

// Resident maps to the resident table: the person each MDS assessment
// is completed for.
type Resident struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	FirstName     string     `db:"first_name" json:"first_name"`
	LastName      string     `db:"last_name" json:"last_name"`
	BirthDate     time.Time  `db:"birth_date" json:"birth_date"`
	AdmissionDate time.Time  `db:"admission_date" json:"admission_date"`
	DischargeDate *time.Time `db:"discharge_date" json:"discharge_date,omitempty"`
	Room          *string    `db:"room" json:"room,omitempty"`
	Status        string     `db:"status" json:"status"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}
