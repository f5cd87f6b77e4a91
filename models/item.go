// models/item.go
package models

import "time"

const ItemTable = "items"

type Item struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;index" json:"name"`
	Category  string    `gorm:"size:100;not null;index" json:"category"`
	Location  string    `gorm:"size:100;not null;index" json:"location"`
	Condition string    `gorm:"size:50;not null;default:'Good'" json:"condition"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Item) TableName() string { return ItemTable }

// Categories, Locations and Conditions are the closed sets every item is
// drawn from. They mirror the facility's radio assignment map and are only
// extended by a code change.
var Categories = []string{
	"Portable Radios",
	"Mobile Radios",
	"Base Station Radios",
	"Repeater Systems",
	"Antennas",
	"Batteries & Chargers",
	"Microphones",
	"Speakers",
	"Cables & Accessories",
	"Programming Equipment",
	"Test Equipment",
	"Other",
}

var Locations = []string{
	"Control Center",
	"Tower 1",
	"Tower 2",
	"Tower 3",
	"Tower 4",
	"Main Gate",
	"North Gate",
	"South Gate",
	"East Gate",
	"West Gate",
	"Perimeter Patrol",
	"Transport Vehicles",
	"Administrative Office",
	"Maintenance Shop",
	"Storage Warehouse",
	"Communications Room",
}

const (
	ConditionExcellent = "Excellent"
	ConditionGood      = "Good"
	ConditionFair      = "Fair"
	ConditionPoor      = "Poor"
	ConditionReorder   = "Need for order"
)

var Conditions = []string{
	ConditionExcellent,
	ConditionGood,
	ConditionFair,
	ConditionPoor,
	ConditionReorder,
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func ValidCategory(v string) bool  { return contains(Categories, v) }
func ValidLocation(v string) bool  { return contains(Locations, v) }
func ValidCondition(v string) bool { return contains(Conditions, v) }
