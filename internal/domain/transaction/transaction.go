package transaction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// TransactionID is the identifier carried by the mobile-money export.
// The export writes it as a JSON number, older dumps as a string; both decode here.
type TransactionID string

// UnmarshalJSON accepts a JSON number or a JSON string.
func (id *TransactionID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("transaction id: %w", err)
		}
		*id = TransactionID(s)
		return nil
	}

	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("transaction id: %q is neither a number nor a string", data)
	}
	*id = TransactionID(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// Participant is the counterparty of a raw transaction.
type Participant struct {
	Name        string `json:"Name"`
	PhoneNumber string `json:"PhoneNumber"`
}

// RawTransaction is one record of the mobile-money JSON export.
// Amount, TransactionType and Status are required; they are pointers so that an
// absent field can be told apart from a zero value.
type RawTransaction struct {
	TransactionID   TransactionID `json:"TransactionID"`
	DateTime        string        `json:"DateTime"`
	Amount          *float64      `json:"Amount"`
	TransactionType *string       `json:"TransactionType"`
	MessageText     string        `json:"MessageText,omitempty"`
	Status          *string       `json:"Status"`
	Participants    []Participant `json:"Participants,omitempty"`
}

// NormalizedTransaction is the display-ready record consumed by the UI.
type NormalizedTransaction struct {
	ID         string  `json:"id" bson:"id"`
	Name       string  `json:"name" bson:"name"`
	Phone      string  `json:"phone" bson:"phone"`
	Amount     float64 `json:"amount" bson:"amount"`
	Category   string  `json:"category" bson:"category"`
	Icon       string  `json:"icon" bson:"icon"`
	StatusIcon string  `json:"statusIcon" bson:"status_icon"`
	Status     string  `json:"status" bson:"status"`
	Date       string  `json:"date" bson:"date"`
	Time       string  `json:"time" bson:"time"`
}
