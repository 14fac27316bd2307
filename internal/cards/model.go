package cards

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names, correlated only by registerNumber.
const (
	CollectionPrintRequests = "printrequests"
	CollectionAccepted      = "acceptedidcards"
	CollectionHistory       = "acceptancehistories"
	CollectionAdminIDs      = "adminids"
)

// StatusAccepted is the default status stamped on an accepted card.
const StatusAccepted = "accepted"

// PrintRequest is a pending print job. Created externally, deleted once accepted.
type PrintRequest struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	RegisterNumber string             `bson:"registerNumber,omitempty" json:"registerNumber,omitempty"`
	Name           string             `bson:"name,omitempty" json:"name,omitempty"`
	DOB            string             `bson:"dob,omitempty" json:"dob,omitempty"`
	Department     string             `bson:"department,omitempty" json:"department,omitempty"`
	Year           string             `bson:"year,omitempty" json:"year,omitempty"`
	Section        string             `bson:"section,omitempty" json:"section,omitempty"`
	LibraryCode    string             `bson:"libraryCode,omitempty" json:"libraryCode,omitempty"`
	Reason         string             `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// AcceptedIDCard is the durable record of an accepted request. Never updated
// or deleted by this service.
type AcceptedIDCard struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	RegisterNumber string             `bson:"registerNumber,omitempty" json:"registerNumber,omitempty"`
	Name           string             `bson:"name,omitempty" json:"name,omitempty"`
	DOB            string             `bson:"dob,omitempty" json:"dob,omitempty"`
	Department     string             `bson:"department,omitempty" json:"department,omitempty"`
	Year           string             `bson:"year,omitempty" json:"year,omitempty"`
	Section        string             `bson:"section,omitempty" json:"section,omitempty"`
	LibraryCode    string             `bson:"libraryCode,omitempty" json:"libraryCode,omitempty"`
	Reason         string             `bson:"reason,omitempty" json:"reason,omitempty"`
	Status         string             `bson:"status,omitempty" json:"status,omitempty"`
	AcceptedAt     time.Time          `bson:"acceptedAt,omitempty" json:"acceptedAt,omitempty"`
}

// AcceptanceHistory is the audit-trail entity. Readable through the API;
// no code path in this service writes it.
type AcceptanceHistory struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	RegisterNumber string             `bson:"registerNumber,omitempty" json:"registerNumber,omitempty"`
	Name           string             `bson:"name,omitempty" json:"name,omitempty"`
	DOB            string             `bson:"dob,omitempty" json:"dob,omitempty"`
	Department     string             `bson:"department,omitempty" json:"department,omitempty"`
	Year           string             `bson:"year,omitempty" json:"year,omitempty"`
	Section        string             `bson:"section,omitempty" json:"section,omitempty"`
	LibraryCode    string             `bson:"libraryCode,omitempty" json:"libraryCode,omitempty"`
	Reason         string             `bson:"reason,omitempty" json:"reason,omitempty"`
	Status         string             `bson:"status,omitempty" json:"status,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// AdminID is an allow-list entry for login. adminid carries a unique index;
// duplicates are rejected by the store, not by application logic.
type AdminID struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	AdminID string             `bson:"adminid" json:"adminid"`
}
