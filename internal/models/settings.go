package models

// Settings is the singleton facility configuration document.
type Settings struct {
	ID       string `bson:"_id" json:"-"`
	TenantID string `bson:"tenant_id" json:"tenant_id"`
	Facility string `bson:"facility" json:"facility"`
}
